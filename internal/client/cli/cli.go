package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/socialhub/internal/client/iocli"
	"github.com/iudanet/socialhub/internal/client/storage"
	"github.com/iudanet/socialhub/pkg/api"
)

// PasswordEnv переменная окружения с паролем
const PasswordEnv = "SOCIALHUB_PASSWORD"

// ErrNotAuthenticated нет сохраненной сессии
var ErrNotAuthenticated = errors.New("not authenticated, please run 'socialhub login' first")

// APIClient операции сервера, которые использует CLI
type APIClient interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	Health(ctx context.Context) (*api.HealthResponse, error)
}

type Passwords struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io        iocli.IO
	apiClient APIClient
	store     storage.SessionStorage
	now       func() time.Time
	getenv    func(string) string
	serverURL string
	passwords Passwords
}

func New(io iocli.IO, apiClient APIClient, store storage.SessionStorage, serverURL string, passwords Passwords) *Cli {
	return &Cli{
		io:        io,
		apiClient: apiClient,
		store:     store,
		serverURL: serverURL,
		passwords: passwords,
		now:       time.Now,
		getenv:    os.Getenv,
	}
}

// Run выполняет команду
func (c *Cli) Run(ctx context.Context, command string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "refresh":
		return c.runRefresh(ctx)
	case "status":
		return c.runStatus(ctx)
	case "health":
		return c.runHealth(ctx)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// getPassword берет пароль из источников по приоритету:
// 1. Переменная окружения SOCIALHUB_PASSWORD
// 2. Файл из --password-file
// 3. Параметр --password
// 4. Интерактивный ввод (с подтверждением, если confirm)
func (c *Cli) getPassword(prompt string, confirm bool) (string, error) {
	if envPassword := c.getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	if confirm {
		again, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
		if again != password {
			return "", fmt.Errorf("passwords do not match")
		}
	}

	return password, nil
}

// session возвращает ErrNotAuthenticated, если сессии нет
func (c *Cli) session(ctx context.Context) (*storage.Session, error) {
	session, err := c.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

func (c *Cli) saveAuth(ctx context.Context, resp *api.AuthResponse) (*storage.Session, error) {
	session := &storage.Session{
		ServerURL:       c.serverURL,
		AccessToken:     resp.AccessToken,
		RefreshToken:    resp.RefreshToken,
		AccessExpiresAt: accessExpiry(resp.AccessToken),
	}
	if resp.User != nil {
		session.UserID = resp.User.ID
		session.Username = resp.User.Username
		session.Email = resp.User.Email
	}

	if err := c.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// accessExpiry читает exp из access token без проверки подписи;
// секрета у клиента нет, значение нужно только для отображения
func accessExpiry(accessToken string) int64 {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Unix()
}

func PrintUsage(io iocli.IO) {
	io.Println("SocialHub Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  socialhub [OPTIONS] COMMAND")
	io.Println()
	io.Println("Options:")
	io.Println("  --version             Show version information")
	io.Println("  --server URL          Server URL (default: http://localhost:8080)")
	io.Println("  --db PATH             Path to local session database (default: socialhub-client.db)")
	io.Println("  --password PASSWORD   Password (not recommended, use env var or file)")
	io.Println("  --password-file PATH  Path to file containing password")
	io.Println()
	io.Println("Password Priority (highest to lowest):")
	io.Println("  1. " + PasswordEnv + " environment variable")
	io.Println("  2. --password-file (file path)")
	io.Println("  3. --password (command line)")
	io.Println("  4. Interactive prompt (fallback)")
	io.Println()
	io.Println("Commands:")
	io.Println("  register   Register new user and start a session")
	io.Println("  login      Login with email and password")
	io.Println("  refresh    Get a new access token using the stored refresh token")
	io.Println("  logout     Revoke the refresh token and delete the local session")
	io.Println("  status     Show authentication status")
	io.Println("  health     Check server availability")
	io.Println()
	io.Println("Examples:")
	io.Println("  socialhub register")
	io.Println("  SOCIALHUB_PASSWORD='secret123' socialhub login")
	io.Println("  socialhub --server https://example.com status")
}
