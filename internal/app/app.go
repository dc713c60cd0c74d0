package app

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Application wires config, logger, backend client, and the conversation
// session into one unit owned by the command layer.
type Application struct {
	Config  Config
	Backend Backend
	Session *Session
	Logger  *zap.Logger
}

// NewApplication builds the full stack. With mockMode the backend is the
// canned FAQ answerer and no network is touched.
func NewApplication(cfg Config, mockMode bool) (*Application, error) {
	logger, err := NewLogger(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	topics := DefaultTopics()

	var backend Backend
	if mockMode {
		backend = NewMockBackend(topics)
	} else {
		backend = NewChatClient(cfg.ServerURL, uuid.NewString())
	}

	sess := DefaultSessionConfig()
	sess.SuggestCount = cfg.SuggestCount
	sess.MaxAttempts = cfg.MaxAttempts

	logger.Info("application initialized",
		zap.String("server_url", cfg.ServerURL),
		zap.Bool("mock", mockMode))

	return &Application{
		Config:  cfg,
		Backend: backend,
		Session: NewSession(sess, backend, topics, logger),
		Logger:  logger,
	}, nil
}

// Close disposes the session and flushes the log.
func (a *Application) Close() {
	a.Session.Close()
	_ = a.Logger.Sync()
}
