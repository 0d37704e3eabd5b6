package http

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/relware/mapship/pkg/domain/model"
	"github.com/relware/mapship/pkg/domain/types"
)

// uploadMemoryLimit bounds how much of a multipart body is held in memory
// before spilling to temporary files.
const uploadMemoryLimit = 32 << 20

// UploadHandler accepts source-map and commit uploads and stores them under
// the data directory, one subdirectory per release.
type UploadHandler struct {
	dataDir string
	token   types.Secret
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(dataDir string, token types.Secret) (*UploadHandler, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dataDir))
	}

	return &UploadHandler{
		dataDir: dataDir,
		token:   token,
	}, nil
}

// Handle processes upload requests
func (h *UploadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	if !h.verifyToken(r.Header.Get("Authorization")) {
		logger.Warn("upload with invalid token")
		writeError(w, goerr.New("invalid token"), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		logger.Error("failed to parse multipart form", "error", err)
		writeError(w, goerr.Wrap(err, "invalid multipart payload"), http.StatusBadRequest)
		return
	}

	release := r.FormValue("release")
	if release == "" {
		writeError(w, goerr.New("missing release field"), http.StatusBadRequest)
		return
	}

	releaseDir := filepath.Join(h.dataDir, filepath.Base(release))
	if err := os.MkdirAll(releaseDir, 0755); err != nil {
		logger.Error("failed to create release directory", "error", err, "dir", releaseDir)
		writeError(w, goerr.New("storage failure"), http.StatusInternalServerError)
		return
	}

	var stored string
	switch {
	case hasFile(r, "file"):
		name, err := h.storeSourceMap(r, releaseDir)
		if err != nil {
			logger.Error("failed to store source map", "error", err, "release", release)
			writeError(w, goerr.New("storage failure"), http.StatusInternalServerError)
			return
		}
		stored = name

	case r.FormValue("commits") != "":
		name, err := h.storeCommits(r.FormValue("commits"), releaseDir)
		if err != nil {
			logger.Error("failed to store commits", "error", err, "release", release)
			writeError(w, err, http.StatusBadRequest)
			return
		}
		stored = name

	default:
		writeError(w, goerr.New("payload carries neither file nor commits"), http.StatusBadRequest)
		return
	}

	logger.Info("stored upload",
		"release", release,
		"stored", stored,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(model.CollectorResponse{Error: false}); err != nil {
		logger.Error("Failed to encode success response", "error", err)
	}
}

// storeSourceMap writes the uploaded file part into the release directory
// under a collision-free name.
func (h *UploadHandler) storeSourceMap(r *http.Request, releaseDir string) (string, error) {
	part, header, err := r.FormFile("file")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read file part")
	}
	defer part.Close()

	// Attachment filenames may carry directories; keep the base name only
	name := uuid.NewString() + "_" + filepath.Base(filepath.FromSlash(header.Filename))
	destPath := filepath.Join(releaseDir, name)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create stored file", goerr.V("path", destPath))
	}
	defer dest.Close()

	if _, err := io.Copy(dest, part); err != nil {
		return "", goerr.Wrap(err, "failed to write stored file", goerr.V("path", destPath))
	}

	return name, nil
}

// storeCommits validates the commits payload and stores it as JSON
func (h *UploadHandler) storeCommits(payload, releaseDir string) (string, error) {
	var commits []model.CommitRecord
	if err := json.Unmarshal([]byte(payload), &commits); err != nil {
		return "", goerr.Wrap(err, "commits field is not a valid commit array")
	}

	name := "commits_" + uuid.NewString() + ".json"
	destPath := filepath.Join(releaseDir, name)
	if err := os.WriteFile(destPath, []byte(payload), 0644); err != nil {
		return "", goerr.Wrap(err, "failed to write commits file", goerr.V("path", destPath))
	}

	return name, nil
}

// verifyToken checks the bearer credential. An empty configured token
// disables the check (open development mode).
func (h *UploadHandler) verifyToken(authorization string) bool {
	if h.token.Unveil() == "" {
		return true
	}

	presented := strings.TrimPrefix(authorization, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.token.Unveil())) == 1
}

// hasFile reports whether the parsed multipart form carries the named file part
func hasFile(r *http.Request, name string) bool {
	if r.MultipartForm == nil {
		return false
	}
	return len(r.MultipartForm.File[name]) > 0
}
