package session

import (
	"context"
	"fmt"
)

// pageView 實作 ISession。
// 只有內容變動過才會寫回 store，Unmount 後寫回即刪除整個頁面狀態。
type pageView struct {
	id     string
	ctx    context.Context
	store  IStore
	fields map[string]string
	loaded bool
	dirty  bool
}

func NewSession(ctx context.Context, id string, store IStore) ISession {
	if ctx == nil {
		ctx = context.Background()
	}
	return &pageView{id: id, ctx: ctx, store: store, fields: map[string]string{}}
}

// ID 同時作為 SSE 頻道名稱
func (p *pageView) ID() string {
	return p.id
}

func (p *pageView) Load() error {
	const op = "session.Load"
	if p.loaded {
		return nil
	}
	fields, err := p.store.Load(p.ctx, p.id)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, p.id, err)
	}
	if fields != nil {
		p.fields = fields
	}
	p.loaded = true
	return nil
}

// Decode 讀取欄位到 v，欄位不存在時回傳 false
func (p *pageView) Decode(key string, v any) (bool, error) {
	const op = "session.Decode"
	encoded, ok := p.fields[key]
	if !ok {
		return false, nil
	}
	if err := decodeValue(encoded, v); err != nil {
		return false, fmt.Errorf("%s: %s: %w", op, key, err)
	}
	return true, nil
}

func (p *pageView) Encode(key string, v any) error {
	const op = "session.Encode"
	encoded, err := encodeValue(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, key, err)
	}
	if p.fields[key] != encoded {
		p.fields[key] = encoded
		p.dirty = true
	}
	return nil
}

// Take 讀取後刪除欄位，用於只顯示一次的資料。
// 無法解析的欄位同樣會被刪除。
func (p *pageView) Take(key string, v any) (bool, error) {
	ok, err := p.Decode(key, v)
	p.Delete(key)
	return ok, err
}

func (p *pageView) Delete(key string) {
	if _, ok := p.fields[key]; ok {
		delete(p.fields, key)
		p.dirty = true
	}
}

// Unmount 捨棄整個頁面狀態
func (p *pageView) Unmount() {
	if len(p.fields) > 0 {
		p.dirty = true
	}
	p.fields = map[string]string{}
}

func (p *pageView) Save() error {
	const op = "session.Save"
	if !p.dirty {
		return nil
	}
	if err := p.store.Save(p.ctx, p.id, p.fields); err != nil {
		return fmt.Errorf("%s: %s: %w", op, p.id, err)
	}
	p.dirty = false
	return nil
}
