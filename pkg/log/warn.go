package log

import (
	"io"

	"github.com/rs/zerolog"

	elerrors "github.com/elnet-ml/elnet/pkg/errors"
)

// InstallWarningLogger routes pkg/errors warnings through a zerolog
// logger writing to w. Warning types that implement
// zerolog.LogObjectMarshaler are logged with their structured fields.
func InstallWarningLogger(w io.Writer) {
	logger := zerolog.New(w).With().Timestamp().Logger()
	elerrors.SetZerologWarnFunc(func(warning error) {
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			logger.Warn().Object("warning", m).Msg(warning.Error())
			return
		}
		logger.Warn().Err(warning).Msg("warning")
	})
}
