package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"reelblog/internal/flash"
	"reelblog/internal/middleware"
	"reelblog/internal/sanitize"
	"reelblog/internal/session"
)

// totpIssuer is the issuer label shown in authenticator apps.
const totpIssuer = "ReelBlog"

// RegisterForm renders the sign-up page.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render.Page(w, r, "register", h.page("Join", map[string]any{}))
}

// Register creates a new reader account and signs it in. New accounts are
// never staff.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	displayName := sanitize.Text(strings.TrimSpace(r.PostFormValue("display_name")))
	password := r.PostFormValue("password")

	if displayName == "" {
		displayName = username
	}

	errs := validateRegistration(username, email, password)

	if len(errs) == 0 {
		if existing, err := h.users.FindByUsername(username); err != nil {
			h.serverError(w, "check username", err)
			return
		} else if existing != nil {
			errs = append(errs, "That username is already taken.")
		}
		if existing, err := h.users.FindByEmail(email); err != nil {
			h.serverError(w, "check email", err)
			return
		} else if existing != nil {
			errs = append(errs, "An account with that email already exists.")
		}
	}

	if len(errs) > 0 {
		h.render.Page(w, r, "register", h.page("Join", map[string]any{
			"Errors":      errs,
			"Username":    username,
			"Email":       email,
			"DisplayName": displayName,
		}))
		return
	}

	user, err := h.users.Create(username, email, password, displayName, false)
	if err != nil {
		h.serverError(w, "create user", err)
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		IsStaff:     false,
		TwoFADone:   true, // 2FA applies to staff only
	})
	if err != nil {
		h.serverError(w, "create session", err)
		return
	}

	h.log.Info("user registered", "username", user.Username)
	flash.Success(w, r, "Welcome to ReelBlog!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm renders the sign-in page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render.Page(w, r, "login", h.page("Sign in", map[string]any{}))
}

// Login verifies credentials and opens a session. Staff members continue
// to the TOTP step before the session counts as fully authenticated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.users.FindByUsername(username)
	if err != nil {
		h.serverError(w, "find user", err)
		return
	}
	// Same message whether the user or the password is wrong.
	if user == nil || !h.users.CheckPassword(user, password) {
		h.log.Info("failed login attempt", "username", username)
		h.render.Page(w, r, "login", h.page("Sign in", map[string]any{
			"Error":    "Invalid username or password.",
			"Username": username,
		}))
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		IsStaff:     user.IsStaff,
		TwoFADone:   !user.IsStaff, // staff must still pass the TOTP step
	})
	if err != nil {
		h.serverError(w, "create session", err)
		return
	}

	h.log.Info("user logged in", "username", user.Username, "staff", user.IsStaff)

	if user.IsStaff {
		if user.TOTPEnabled {
			http.Redirect(w, r, "/2fa/verify", http.StatusSeeOther)
		} else {
			http.Redirect(w, r, "/2fa/setup", http.StatusSeeOther)
		}
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and returns to the home page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.log.Error("destroy session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// TwoFASetupForm shows the QR code for enrolling an authenticator app.
// Staff only; a fresh secret is generated on each visit until one is
// confirmed.
func (h *Handler) TwoFASetupForm(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if !sess.IsStaff {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		h.serverError(w, "find user", err)
		return
	}
	if user.TOTPEnabled {
		http.Redirect(w, r, "/2fa/verify", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Username,
	})
	if err != nil {
		h.serverError(w, "generate totp key", err)
		return
	}
	if err := h.users.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		h.serverError(w, "store totp secret", err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		h.serverError(w, "encode qr code", err)
		return
	}

	h.render.Page(w, r, "twofa_setup", h.page("Two-factor setup", map[string]any{
		"QRCode": base64.StdEncoding.EncodeToString(png),
		"Secret": key.Secret(),
	}))
}

// TwoFASetup confirms the enrollment code and activates 2FA.
func (h *Handler) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if !sess.IsStaff {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		h.serverError(w, "find user", err)
		return
	}
	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/2fa/setup", http.StatusSeeOther)
		return
	}

	code := strings.TrimSpace(r.PostFormValue("code"))
	if !totp.Validate(code, *user.TOTPSecret) {
		h.log.Info("totp enrollment failed", "username", user.Username)
		http.Redirect(w, r, "/2fa/setup", http.StatusSeeOther)
		return
	}

	if err := h.users.EnableTOTP(user.ID); err != nil {
		h.serverError(w, "enable totp", err)
		return
	}

	sess.TwoFADone = true
	if err := h.sessions.Update(r.Context(), r, sess); err != nil {
		h.serverError(w, "update session", err)
		return
	}

	flash.Success(w, r, "Two-factor authentication is enabled.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// TwoFAVerifyForm shows the TOTP prompt for an already-enrolled staff member.
func (h *Handler) TwoFAVerifyForm(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if !sess.IsStaff {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if sess.TwoFADone {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	h.render.Page(w, r, "twofa_verify", h.page("Two-factor verification", map[string]any{}))
}

// TwoFAVerify checks the TOTP code and completes the staff sign-in.
func (h *Handler) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if !sess.IsStaff {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		h.serverError(w, "find user", err)
		return
	}
	if !user.TOTPEnabled || user.TOTPSecret == nil {
		http.Redirect(w, r, "/2fa/setup", http.StatusSeeOther)
		return
	}

	code := strings.TrimSpace(r.PostFormValue("code"))
	if !totp.Validate(code, *user.TOTPSecret) {
		h.log.Info("totp verification failed", "username", user.Username)
		h.render.Page(w, r, "twofa_verify", h.page("Two-factor verification", map[string]any{
			"Error": "That code didn't work. Try again.",
		}))
		return
	}

	sess.TwoFADone = true
	if err := h.sessions.Update(r.Context(), r, sess); err != nil {
		h.serverError(w, "update session", err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
