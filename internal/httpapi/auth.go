package httpapi

import (
	"net/http"

	"agrocampo-be/internal/user"
)

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		FullName: u.FullName,
		Phone:    u.Phone,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Role:     user.Role(req.Role),
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  toUserResponse(u),
	})
}
