package utils

import (
    "os"
    "path/filepath"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Logger devuelve el logger del proceso. Con LOG_FILE definido duplica la
// salida a un archivo JSON además de stdout.
func Logger() *zap.Logger {
    if logger != nil { return logger }
    logger = construir(os.Getenv("LOG_FILE"))
    return logger
}

func construir(archivo string) *zap.Logger {
    if archivo == "" {
        l, _ := zap.NewProduction()
        return l
    }
    _ = os.MkdirAll(filepath.Dir(archivo), 0o755)
    f, err := os.OpenFile(archivo, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        l, _ := zap.NewProduction()
        return l
    }
    enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
    tee := zapcore.NewTee(
        zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.InfoLevel),
        zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
    )
    return zap.New(tee)
}
