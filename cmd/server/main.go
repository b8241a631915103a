package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/api"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/auth"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/config"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/db"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/gateway"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/llm"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/ratelimit"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize database
	database, err := db.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.Migrate(context.Background()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize the per-org API rate limiter
	limiter, err := ratelimit.NewRateLimiter(cfg.RedisURL, func(ctx context.Context, orgID string) (int, error) {
		org, err := database.GetOrganization(ctx, orgID)
		if err != nil {
			return 0, err
		}
		return org.RateLimitPerHour, nil
	})
	if err != nil {
		log.Fatal("Failed to initialize rate limiter:", err)
	}

	// Initialize the text generation provider
	var provider llm.Client
	if cfg.AnthropicAPIKey != "" {
		provider = llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	} else {
		log.Println("ANTHROPIC_API_KEY is not set; AI generation will return errors")
	}

	verifier := auth.NewVerifier(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(verifier)

	// Initialize router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.HandleFunc("/auth/token", tokenHandler(database, cfg.JWTSecret)).Methods("POST")

	// AI generation does its own validation and session resolution so that
	// malformed requests are rejected before the credential is inspected.
	generateHandler := gateway.NewHandler(verifier, database, provider, cfg.AIUserHourlyLimit, cfg.AIOrgHourlyLimit)
	router.HandleFunc("/api/ai/generate", generateHandler.HandleGenerate).Methods("POST")

	// Protected CRUD routes
	apiHandler := api.NewHandler(database)
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(mux.MiddlewareFunc(authMiddleware.Authenticate))
	protected.Use(mux.MiddlewareFunc(limiter.Middleware))
	apiHandler.RegisterRoutes(protected)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Printf("AI generation available at /api/ai/generate")
	if err := http.ListenAndServe(":"+cfg.ServerPort, recovery(router)); err != nil {
		log.Fatal("Server failed:", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

// tokenHandler exchanges an email/password pair for a session token.
func tokenHandler(database *db.DB, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		profile, err := database.GetProfileByEmail(r.Context(), req.Email)
		if err != nil {
			log.Printf("Profile lookup failed for %s: %v", req.Email, err)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := auth.GenerateToken(profile.ID, profile.OrgID, profile.Email, jwtSecret)
		if err != nil {
			log.Printf("Token generation failed: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

// recovery converts panics into 500 responses instead of killing the
// connection handler.
func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
