package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

const maxSlugLength = 80

// GenerateSlug 把标题转换为 URL 中使用的 slug，汉字转换为不带声调的拼音
func GenerateSlug(title string) string {
	var b strings.Builder
	pendingDash := false

	write := func(s string) {
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteString(s)
	}

	for _, r := range title {
		switch {
		case unicode.Is(unicode.Han, r):
			py := pinyin.LazyConvert(string(r), nil)
			if len(py) == 0 {
				pendingDash = true
				continue
			}
			// 每个汉字的拼音之间用 - 分隔
			pendingDash = true
			write(py[0])
			pendingDash = true
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			write(string(unicode.ToLower(r)))
		default:
			pendingDash = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}
