package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/models"
	"github.com/shikamusenge/sumtech-clients/internal/session"
	"github.com/shikamusenge/sumtech-clients/internal/store"
)

func main() {
	_ = godotenv.Load()

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "Account email")
	password := loginCmd.String("password", "", "Account password")

	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	regUsername := registerCmd.String("username", "", "Username for the new account")
	regEmail := registerCmd.String("email", "", "Email for the new account")
	regPassword := registerCmd.String("password", "", "Password for the new account")
	regPhone := registerCmd.String("phone", "", "Phone number (optional)")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "login":
		loginCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			loginCmd.PrintDefaults()
			os.Exit(1)
		}
		withSession(func(ctx context.Context, s *session.Store) {
			if err := s.Login(ctx, models.Credentials{Email: *email, Password: *password}); err != nil {
				log.Fatalf("Login failed: %v", err)
			}
			if user := s.User(); user != nil {
				fmt.Printf("Signed in as '%s'. Token stored.\n", user.Username)
			} else {
				fmt.Println("Signed in. Token stored.")
			}
		})
	case "register":
		registerCmd.Parse(os.Args[2:])
		if *regUsername == "" || *regEmail == "" || *regPassword == "" {
			fmt.Println("username, email and password are required")
			registerCmd.PrintDefaults()
			os.Exit(1)
		}
		withSession(func(ctx context.Context, s *session.Store) {
			reg := models.Registration{
				Username:    *regUsername,
				Email:       *regEmail,
				Password:    *regPassword,
				PhoneNumber: *regPhone,
			}
			if err := s.Register(ctx, reg); err != nil {
				log.Fatalf("Registration failed: %v", err)
			}
			fmt.Printf("Account '%s' created.\n", *regUsername)
		})
	case "logout":
		withSession(func(ctx context.Context, s *session.Store) {
			s.Logout(ctx)
			fmt.Println("Signed out; stored token cleared.")
		})
	case "whoami":
		withSession(func(ctx context.Context, s *session.Store) {
			s.CheckSession(ctx)
			user := s.User()
			if user == nil {
				fmt.Println("Not signed in.")
				os.Exit(1)
			}
			fmt.Printf("%s <%s> phone=%s\n", user.Username, user.Email, user.PhoneNumber)
		})
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("expected 'login', 'register', 'logout' or 'whoami' subcommand")
}

// withSession wires the same stack the server uses: SQLite token store,
// backend client, session store.
func withSession(fn func(context.Context, *session.Store)) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./sumtech.db"
	}
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:5000"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer db.Close()
	// Ensure table exists if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fn(ctx, session.NewStore(api.NewClient(backendURL, db), db))
}
