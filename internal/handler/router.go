package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/orgchart-planner/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux             *http.ServeMux
	logger          *slog.Logger
	posHandler      *PositionHandler
	analysisHandler *AnalysisHandler
}

// NewRouter создаёт новый роутер
func NewRouter(posHandler *PositionHandler, analysisHandler *AnalysisHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		logger:          logger,
		posHandler:      posHandler,
		analysisHandler: analysisHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики
	r.mux.HandleFunc("/positions/", r.positionsRouter)
	r.mux.HandleFunc("/positions", r.positionsRouter)
	r.mux.HandleFunc("/settings", r.settingsRouter)
	r.mux.HandleFunc("/share", r.shareRouter)
	r.mux.HandleFunc("/analysis", r.analysisRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// positionsRouter обрабатывает все запросы к /positions/
func (r *Router) positionsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/positions")
	path = strings.Trim(path, "/")

	// Коллекция: создание, список, полная очистка
	if path == "" {
		switch req.Method {
		case http.MethodPost:
			r.posHandler.Create(w, req)
		case http.MethodGet:
			r.posHandler.List(w, req)
		case http.MethodDelete:
			r.posHandler.DeleteAll(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	// Служебные под-ресурсы коллекции
	switch path {
	case "tree":
		if req.Method == http.MethodGet {
			r.posHandler.Tree(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	case "export":
		if req.Method == http.MethodGet {
			r.posHandler.Export(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	case "bulk":
		if req.Method == http.MethodPatch {
			r.posHandler.BulkOverwrite(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	// /positions/{id}
	if !strings.Contains(path, "/") {
		switch req.Method {
		case http.MethodGet:
			r.posHandler.GetByID(w, req)
		case http.MethodPatch:
			r.posHandler.Update(w, req)
		case http.MethodDelete:
			r.posHandler.Delete(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// settingsRouter обрабатывает запросы к /settings
func (r *Router) settingsRouter(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.posHandler.GetSettings(w, req)
	case http.MethodPut:
		r.posHandler.UpdateSettings(w, req)
	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

// shareRouter обрабатывает запросы к /share
func (r *Router) shareRouter(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.posHandler.Share(w, req)
	case http.MethodPost:
		r.posHandler.ImportShare(w, req)
	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

// analysisRouter обрабатывает запросы к /analysis
func (r *Router) analysisRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost {
		r.analysisHandler.Analyze(w, req)
		return
	}
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}
