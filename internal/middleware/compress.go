package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Gzip сжимает ответы от minSize байт для клиентов с Accept-Encoding: gzip.
// Выгрузку xlsx не оборачиваем: это уже zip.
func Gzip(minSize int) func(http.Handler) http.Handler {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	if err != nil {
		// невалидный minSize: без сжатия
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler { return wrap(next) }
}
