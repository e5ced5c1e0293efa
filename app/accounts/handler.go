package accounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/auth"
	"github.com/lankamart/storefront/models"
)

type SessionResponse struct {
	Account *models.UserAccount `json:"account"`
}

type AccountManager interface {
	Authenticate(ctx context.Context, username, password string) (models.UserAccount, error)
	Register(ctx context.Context, r auth.Registration) (models.UserAccount, error)
	SetRole(ctx context.Context, id string, role models.Role) (models.UserAccount, error)
	Logout(ctx context.Context) error
	Current() *models.UserAccount
	Accounts() []models.UserAccount
}

type AccountHandler struct {
	manager AccountManager
}

func NewAccountHandler(m AccountManager) *AccountHandler {
	return &AccountHandler{manager: m}
}

func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input auth.Credentials
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	account, err := h.manager.Authenticate(r.Context(), input.Username, input.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		response.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	public := account.Public()
	response.OK(w, SessionResponse{Account: &public})
}

func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input auth.Registration
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Username == "" || input.Password == "" {
		response.Error(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	account, err := h.manager.Register(r.Context(), input)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	public := account.Public()
	response.JSON(w, http.StatusCreated, SessionResponse{Account: &public})
}

func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Logout(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSession reports the signed-in account; account is null for guests.
func (h *AccountHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	current := h.manager.Current()
	if current != nil {
		public := current.Public()
		current = &public
	}
	response.OK(w, SessionResponse{Account: current})
}

func (h *AccountHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts := h.manager.Accounts()
	out := make([]models.UserAccount, len(accounts))
	for i, a := range accounts {
		out[i] = a.Public()
	}
	response.OK(w, out)
}

func (h *AccountHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Role string `json:"role"`
	}
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	role, err := models.ParseRole(input.Role)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.manager.SetRole(r.Context(), r.PathValue("id"), role)
	switch {
	case errors.Is(err, models.ErrAccountNotFound):
		response.Error(w, http.StatusNotFound, "Account not found")
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Failed to update role")
	default:
		response.OK(w, account.Public())
	}
}
