package inmemory

import (
	"log/slog"
	"sync"

	"github.com/embedplay/server/internal/repository/connection"
	"github.com/embedplay/server/pkg/wsrouter"
)

type repo struct {
	connList map[*wsrouter.Conn]string
	idList   map[string]*wsrouter.Conn
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		connList: make(map[*wsrouter.Conn]string),
		idList:   make(map[string]*wsrouter.Conn),
	}
}

func (r *repo) Add(conn *wsrouter.Conn, sessionId string) error {
	funcName := "connection.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug(funcName, "sessionId", sessionId)
	if r.connList[conn] != "" || r.idList[sessionId] != nil {
		slog.Info(funcName, "error", connection.ErrAlreadyExists)
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = sessionId
	r.idList[sessionId] = conn

	return nil
}

func (r *repo) RemoveBySessionId(sessionId string) error {
	funcName := "connection.inmemory.RemoveBySessionId"
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug(funcName, "sessionId", sessionId)
	conn, ok := r.idList[sessionId]
	if !ok {
		slog.Info(funcName, "error", connection.ErrNotFound)
		return connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, sessionId)

	return nil
}

func (r *repo) RemoveByConn(conn *wsrouter.Conn) error {
	funcName := "connection.inmemory.RemoveByConn"
	r.mu.Lock()
	defer r.mu.Unlock()

	slog.Debug(funcName)
	sessionId, ok := r.connList[conn]
	if !ok {
		slog.Info(funcName, "error", connection.ErrNotFound)
		return connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, sessionId)

	return nil
}

func (r *repo) GetConn(sessionId string) (*wsrouter.Conn, error) {
	funcName := "connection.inmemory.GetConn"
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.idList[sessionId]
	if !ok {
		slog.Info(funcName, "error", connection.ErrNotFound)
		return nil, connection.ErrNotFound
	}

	return conn, nil
}

func (r *repo) GetSessionId(conn *wsrouter.Conn) (string, error) {
	funcName := "connection.inmemory.GetSessionId"
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionId, ok := r.connList[conn]
	if !ok {
		slog.Info(funcName, "error", connection.ErrNotFound)
		return "", connection.ErrNotFound
	}

	return sessionId, nil
}
