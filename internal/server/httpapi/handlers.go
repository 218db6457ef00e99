package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/DmitryKarasov/FileService/internal/common"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad credentials")
		return
	}

	token, err := s.auth.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			writeError(w, http.StatusBadRequest, "Bad credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{AuthToken: token})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	_ = s.auth.Logout(r.Context(), r.Header.Get(tokenHeader))

	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Success logout")
}

func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("filename")

	rc, err := s.files.Download(r.Context(), fileName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Error input data")
			return
		}
		s.logger.Error(r.Context(), "download failed", "filename", fileName, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Error download file")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Type", "multipart/form-data")
	_, _ = io.Copy(w, rc)
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("filename")

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error input data")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error(r.Context(), "upload read failed", "filename", fileName, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Error upload file")
		return
	}

	if err := s.files.Upload(r.Context(), fileName, content, header.Size); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			writeError(w, http.StatusBadRequest, "Error input data")
			return
		}
		s.logger.Error(r.Context(), "upload failed", "filename", fileName, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Error upload file")
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Success upload")
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("filename")

	if err := s.files.Remove(r.Context(), fileName); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Error input data")
			return
		}
		s.logger.Error(r.Context(), "delete failed", "filename", fileName, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Error delete file")
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Success deleted")
}

func (s *Server) editFileName(w http.ResponseWriter, r *http.Request) {
	oldFileName := r.URL.Query().Get("filename")

	var req FileNameEdit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Error input data")
		return
	}

	if err := s.files.Rename(r.Context(), oldFileName, req.Filename); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Error input data")
			return
		}
		s.logger.Error(r.Context(), "rename failed", "filename", oldFileName, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Error edit file")
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Success edited")
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "Error input data")
		return
	}

	list, err := s.files.List(r.Context(), limit)
	if err != nil {
		s.logger.Error(r.Context(), "list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Error getting file list")
		return
	}

	resp := make([]FileInfoResponse, 0, len(list))
	for _, item := range list {
		resp = append(resp, FileInfoResponse{Filename: item.Name, Size: item.Size})
	}

	writeJSON(w, http.StatusOK, resp)
}
