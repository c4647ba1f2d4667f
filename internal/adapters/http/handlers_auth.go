package web

import (
	"net/http"

	"aiclub/internal/application/orchestrators"
	"aiclub/internal/application/projections"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.RegisterDeps{
		AccountStore:    s.stores.AccountStore,
		Tokens:          s.tokens,
		SuperAdminEmail: s.cfg.SuperAdminEmail,
		BcryptCost:      s.cfg.BcryptCost,
		GenerateID:      s.newID,
		Now:             s.now,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		AccountStore:    s.stores.AccountStore,
		Tokens:          s.tokens,
		SuperAdminEmail: s.cfg.SuperAdminEmail,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) usersDeps() projections.UsersDeps {
	return projections.UsersDeps{AccountStore: s.stores.AccountStore, SuperAdminEmail: s.cfg.SuperAdminEmail}
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, err := projections.QueryMe(r.Context(), claims(r).ID, s.usersDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := projections.QueryListUsers(r.Context(), s.usersDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	var req changeRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	err := orchestrators.ExecuteChangeRole(r.Context(), orchestrators.ChangeRoleInput{
		UserID:  r.PathValue("id"),
		Role:    req.Role,
		ActorID: claims(r).ID,
	}, orchestrators.ChangeRoleDeps{
		AccountStore:    s.stores.AccountStore,
		SuperAdminEmail: s.cfg.SuperAdminEmail,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
