package s3

import (
	"path"
	"strings"
)

// ImageContentTypes 定義了允許作為縮圖的圖片副檔名及其對應的 MIME 類型
var ImageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
}

// ImageContentType 依物件 key 的副檔名判斷是否為允許的圖片，並返回對應的 MIME 類型
func ImageContentType(key string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	contentType, ok := ImageContentTypes[ext]
	return contentType, ok
}
