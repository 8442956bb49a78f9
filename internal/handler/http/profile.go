package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/auth"
	"github.com/bizprofile/bizprofile-backend-go/internal/domain/profile"
	"github.com/bizprofile/bizprofile-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type ProfileHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadImage(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	NameAvailable(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}

// userIDFromRequest extracts the authenticated user's ID from the JWT claims.
func userIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// optionalQuery returns the query value as a pointer, nil when absent.
func optionalQuery(r *http.Request, key string) *string {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	return &value
}

// Create implements ProfileHandler.
func (h *ProfileHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq profile.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profileResponse, err := h.profileService.Create(r.Context(), userID, createReq)
	if err != nil {
		slog.Error("Create profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company profile created", "profile_id", profileResponse.ID)
	response.Created(w, "Company profile created successfully", profileResponse)
}

// GetMine implements ProfileHandler.
func (h *ProfileHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	profileResponse, err := h.profileService.GetByOwner(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profileResponse)
}

// GetByID implements ProfileHandler.
func (h *ProfileHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profileResponse, err := h.profileService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profileResponse)
}

// Update implements ProfileHandler.
func (h *ProfileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq profile.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profileResponse, err := h.profileService.Update(r.Context(), userID, updateReq)
	if err != nil {
		slog.Error("Update profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company profile updated successfully", profileResponse)
}

// UploadImage implements ProfileHandler.
func (h *ProfileHandlerImpl) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Image file is required", nil)
		return
	}
	defer file.Close()

	uploadReq := profile.UploadImageRequest{
		Field:      r.FormValue("field"),
		File:       file,
		FileHeader: fileHeader,
	}

	uploadResponse, err := h.profileService.UploadImage(r.Context(), userID, uploadReq)
	if err != nil {
		slog.Error("Upload image service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Image uploaded successfully", uploadResponse)
}

// Delete implements ProfileHandler.
func (h *ProfileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.profileService.Delete(r.Context(), userID); err != nil {
		slog.Error("Delete profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company profile deleted", "user_id", userID)
	response.SuccessWithMessage(w, "Company profile deleted successfully", nil)
}

// Search implements ProfileHandler.
func (h *ProfileHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	filter := profile.SearchFilter{
		Search:    optionalQuery(r, "search"),
		Industry:  optionalQuery(r, "industry"),
		City:      optionalQuery(r, "city"),
		State:     optionalQuery(r, "state"),
		Country:   optionalQuery(r, "country"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	profiles, meta, err := h.profileService.Search(r.Context(), filter)
	if err != nil {
		slog.Error("Search profiles service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, profiles, meta)
}

// NameAvailable implements ProfileHandler.
func (h *ProfileHandlerImpl) NameAvailable(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.BadRequest(w, "name query parameter is required", nil)
		return
	}

	available, err := h.profileService.NameAvailable(r.Context(), name, nil)
	if err != nil {
		slog.Error("Name available service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile.NameAvailableResponse{Available: available})
}

// Stats implements ProfileHandler.
func (h *ProfileHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.profileService.GetStats(r.Context())
	if err != nil {
		slog.Error("Stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
