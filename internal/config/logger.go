package config

import (
	"io"
	"log/slog"
	"os"
)

func InitLogger(level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	l := slog.New(h)
	slog.SetDefault(l) // opcional: usar slog.Info(...) direto
	return l
}

// InitTextLogger é o logger do CLI: texto, fora do stdout do resultado.
func InitTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}
