/*
Nombre del archivo: logx.go
Descripcion: Utilidades compartidas para logging estructurado y
             configuracion. Envuelve zap en una superficie minima
             (Info/Error/Warn con un mapa de contexto) para que los
             sitios de llamada luzcan igual que el logging JSON a mano
             que reemplaza, y expone GetEnv para configuracion por
             variables de entorno.
*/

package logx

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once   sync.Once
	global *zap.Logger
)

func logger() *zap.Logger {
	once.Do(func() {
		encoderConfig := zapcore.EncoderConfig{
			TimeKey:     "time",
			LevelKey:    "level",
			MessageKey:  "message",
			EncodeTime:  zapcore.RFC3339TimeEncoder,
			EncodeLevel: zapcore.CapitalLevelEncoder,
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			zapcore.DebugLevel,
		)
		global = zap.New(core)
	})
	return global
}

func fields(ctx map[string]interface{}) []zap.Field {
	if len(ctx) == 0 {
		return nil
	}
	fs := make([]zap.Field, 0, len(ctx))
	for k, v := range ctx {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

// Info escribe un log estructurado de nivel INFO.
func Info(msg string, ctx map[string]interface{}) {
	logger().Info(msg, fields(ctx)...)
}

// Warn escribe un log estructurado de nivel WARN.
func Warn(msg string, ctx map[string]interface{}) {
	logger().Warn(msg, fields(ctx)...)
}

// Error escribe un log estructurado de nivel ERROR.
func Error(msg string, ctx map[string]interface{}) {
	logger().Error(msg, fields(ctx)...)
}

// GetEnv obtiene una variable de entorno o un valor por defecto.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
