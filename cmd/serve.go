package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/store"
)

// maxUploadBytes caps multipart image uploads.
const maxUploadBytes = 10 << 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env.Pipeline, env.Store),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// analysisRunner is the part of the pipeline the HTTP handlers need.
type analysisRunner interface {
	Run(ctx context.Context, input model.AnalysisInput) (*model.Analysis, error)
}

// newRouter builds the chi router serving the analysis API.
func newRouter(runner analysisRunner, st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/analyze", handleAnalyze(runner))
	r.Get("/api/analyses", handleListAnalyses(st))

	return r
}

// requestLogger logs one line per request with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		zap.L().Info("serve: request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func handleAnalyze(runner analysisRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		input, err := decodeAnalyzeRequest(req)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		result, err := runner.Run(req.Context(), input)
		if err != nil {
			status, msg := classifyRunError(err)
			zap.L().Warn("serve: analysis failed",
				zap.String("input_type", string(input.Kind)),
				zap.Error(err),
			)
			writeError(w, status, msg, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleListAnalyses(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var filter store.Filter
		if raw := req.URL.Query().Get("verdict"); raw != "" {
			status, ok := parseVerdictFilter(raw)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid verdict", nil)
				return
			}
			filter.Status = status
		}
		if raw := req.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit", nil)
				return
			}
			filter.Limit = limit
		}

		analyses, err := st.ListRecent(req.Context(), filter)
		if err != nil {
			zap.L().Error("serve: list analyses failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		if analyses == nil {
			analyses = []model.Analysis{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
	}
}

// parseVerdictFilter maps a query value onto the canonical status labels,
// case-insensitively.
func parseVerdictFilter(raw string) (model.Status, bool) {
	switch strings.ToLower(raw) {
	case "real":
		return model.StatusReal, true
	case "fake":
		return model.StatusFake, true
	case "uncertain":
		return model.StatusUncertain, true
	default:
		return "", false
	}
}

// decodeAnalyzeRequest accepts either a JSON body or a multipart form
// carrying an image upload.
func decodeAnalyzeRequest(req *http.Request) (model.AnalysisInput, error) {
	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
			return model.AnalysisInput{}, eris.Wrap(err, "parse multipart form")
		}
		file, header, err := req.FormFile("image")
		if err != nil {
			return model.AnalysisInput{}, eris.Wrap(err, "image file required")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return model.AnalysisInput{}, eris.Wrap(err, "read image upload")
		}
		return model.AnalysisInput{
			Kind:      model.InputKindImage,
			ImageData: data,
			ImageName: header.Filename,
		}, nil
	}

	var input model.AnalysisInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		return model.AnalysisInput{}, eris.Wrap(err, "decode request body")
	}
	return input, nil
}

// classifyRunError maps pipeline failures onto HTTP status codes.
// Validation is the caller's fault; fetch and classification failures are
// upstream outages.
func classifyRunError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, model.ErrFetch):
		return http.StatusBadGateway, "failed to fetch content"
	case errors.Is(err, model.ErrAnalysis):
		return http.StatusBadGateway, "analysis failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := map[string]string{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	writeJSON(w, status, body)
}
