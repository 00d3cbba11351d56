package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"CloudVault/internal/service"
)

// maxUploadBytes ограничивает размер принимаемого файла.
const maxUploadBytes = 256 << 20

// ObjectHandler обрабатывает загрузку, выдачу и удаление файлов.
type ObjectHandler struct {
	ObjectService *service.ObjectService
	Logger        *zap.SugaredLogger
}

// NewObjectHandler создаёт хендлер объектов
func NewObjectHandler(objectService *service.ObjectService, logger *zap.SugaredLogger) *ObjectHandler {
	return &ObjectHandler{ObjectService: objectService, Logger: logger}
}

// UploadResponse — подтверждение сохранения файла.
type UploadResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FileDTO — метаданные файла в списке.
type FileDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// ListResponse — ответ списка файлов.
type ListResponse struct {
	Files []FileDTO `json:"files"`
}

// Upload принимает multipart-форму с полем file и метаданными name/hash.
// Повторная загрузка того же содержимого возвращает id существующего объекта.
func (h *ObjectHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file part is required", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.Logger.Errorw("Upload: read file part", "error", err)
		http.Error(w, "read file", http.StatusInternalServerError)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = fh.Filename
	}
	hash := r.FormValue("hash")
	mimeType := fh.Header.Get("Content-Type")

	obj, created, err := h.ObjectService.Store(r.Context(), name, hash, mimeType, data)
	if err != nil {
		h.Logger.Errorw("Upload: store", "name", name, "error", err)
		http.Error(w, "store failed", http.StatusBadRequest)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, UploadResponse{ID: obj.ID, Name: obj.Name})
}

// Download отдаёт содержимое файла по id.
func (h *ObjectHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	obj, err := h.ObjectService.Get(r.Context(), id)
	if err != nil {
		if service.IsNotFound(err) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("Download: get", "id", id, "error", err)
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	ct := obj.MimeType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}

// List отдаёт метаданные всех файлов.
func (h *ObjectHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.ObjectService.List(r.Context())
	if err != nil {
		h.Logger.Errorw("List: service error", "error", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	resp := ListResponse{Files: make([]FileDTO, 0, len(list))}
	for _, o := range list {
		resp.Files = append(resp.Files, FileDTO{
			ID:   o.ID,
			Name: o.Name,
			Hash: o.ContentHash,
			Size: o.SizeBytes,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete удаляет файл по id.
func (h *ObjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.ObjectService.Delete(r.Context(), id); err != nil {
		if service.IsNotFound(err) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("Delete: service error", "id", id, "error", err)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
