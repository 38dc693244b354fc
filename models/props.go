package models

import (
	"fmt"

	"github.com/spf13/viper"
)

// Props 是外部提供給頁面的輸入，Mode 為空時由呼叫端決定預設模式
type Props struct {
	Mode    Mode    `mapstructure:"mode"`
	Listing Listing `mapstructure:",squash"`
}

// LoadProps 從 YAML / JSON / TOML 檔案讀取頁面輸入，未提供的欄位使用預設值。
// path 為空時直接回傳預設的商品資料。
func LoadProps(path string) (Props, error) {
	const op = "models.LoadProps"
	if path == "" {
		return Props{Listing: DefaultListing()}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Props{}, fmt.Errorf("%s: fail to read %s: %w", op, path, err)
	}

	var props Props
	if err := v.Unmarshal(&props); err != nil {
		return Props{}, fmt.Errorf("%s: fail to decode %s: %w", op, path, err)
	}
	if props.Mode != "" && !props.Mode.Valid() {
		return Props{}, fmt.Errorf("%s: invalid mode %q", op, props.Mode)
	}
	props.Listing = props.Listing.WithDefaults()
	return props, nil
}

// ResolveMode 決定頁面的初始模式：參數優先，其次是檔案中的 mode，都沒有時使用 buy-now
func (p Props) ResolveMode(flag string) (Mode, error) {
	if flag != "" {
		return ParseMode(flag)
	}
	if p.Mode != "" {
		return p.Mode, nil
	}
	return ModeBuyNow, nil
}
