package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skywatch-service/internal/infrastructure/config"
	"skywatch-service/internal/infrastructure/oauth"
	"skywatch-service/pkg/logger"
)

// Performs one Amadeus client-credentials grant and prints the result,
// for checking API credentials before switching the service to live
// mode.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.AmadeusAPIKey == "" || cfg.AmadeusAPISecret == "" {
		log.Fatal("AMADEUS_API_KEY and AMADEUS_API_SECRET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	amadeusOAuth := oauth.NewAmadeusOAuth(cfg.AmadeusAPIKey, cfg.AmadeusAPISecret, cfg.AmadeusBaseURL(), logger.NewLogger(cfg.Environment))
	token, err := amadeusOAuth.Token(ctx)
	if err != nil {
		log.Fatalf("token grant failed: %v", err)
	}

	fmt.Printf("Token type:  %s\n", token.TokenType)
	fmt.Printf("Expires at:  %s (in %s)\n", token.Expiry.Format(time.RFC3339), time.Until(token.Expiry).Round(time.Second))
	fmt.Println("\nCredentials OK - the service can run with DATA_SOURCE_MODE=live")
}
