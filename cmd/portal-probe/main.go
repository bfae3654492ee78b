// Command portal-probe exercises the portal client end to end: it logs in
// with real credentials, prints the bootstrapped academic context, and
// optionally demonstrates session restore from Redis-backed storage.
//
// Configuration comes from flags with .env fallbacks (loaded via godotenv):
//
//	PORTAL_STUDENT_ID, PORTAL_PASSWORD — credentials
//	PORTAL_BASE_URL, PORTAL_LOGIN_URL, PORTAL_RELAY_URL — endpoint overrides
//	REDIS_ADDR — enable Redis session storage
//
// Run:
//
//	go run ./cmd/portal-probe -student-id 20-1234-567 -password secret
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	portalclient "github.com/wildcat-one/portalclient"
	"github.com/wildcat-one/portalclient/session"
)

func main() {
	// Missing .env is fine; flags and the process environment still apply.
	_ = godotenv.Load()

	var (
		studentID = flag.String("student-id", os.Getenv("PORTAL_STUDENT_ID"), "student id (XX-XXXX-XXX)")
		password  = flag.String("password", os.Getenv("PORTAL_PASSWORD"), "portal password")
		restore   = flag.Bool("restore", false, "attempt session restore instead of logging in")
		timeout   = flag.Duration("timeout", 30*time.Second, "per-request timeout")
	)
	flag.Parse()

	cfg := portalclient.DefaultConfig()
	cfg.HTTP.Timeout = *timeout
	if v := os.Getenv("PORTAL_BASE_URL"); v != "" {
		cfg.Endpoints.BaseURL = v
	}
	if v := os.Getenv("PORTAL_LOGIN_URL"); v != "" {
		cfg.Endpoints.LoginURL = v
	}
	if v := os.Getenv("PORTAL_RELAY_URL"); v != "" {
		cfg.Endpoints.RelayURL = v
	}

	builder := portalclient.New().
		WithConfig(cfg).
		WithOnSessionInvalidated(func() {
			fmt.Fprintln(os.Stderr, "session invalidated by the server")
		})

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		builder = builder.WithStorage(session.NewRedisStorage(rdb))
		fmt.Printf("using redis session storage at %s\n", addr)
	}

	client, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()

	if *restore {
		res := client.RestoreSession(ctx)
		if !res.Success {
			fmt.Fprintln(os.Stderr, "no restorable session")
			os.Exit(1)
		}
		fmt.Printf("restored session for %s\n", res.UserData.UserID)
		printContext(client)
		return
	}

	if *studentID == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "student id and password required (flags or .env)")
		os.Exit(2)
	}

	start := time.Now()
	res, err := client.Login(ctx, *studentID, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("logged in as %s (%s) in %s\n", res.UserData.Name, res.UserData.StudentID, time.Since(start).Round(time.Millisecond))
	printContext(client)
}

func printContext(client *portalclient.Client) {
	snap := client.Session().Snapshot()
	fmt.Printf("academic year: %s (id %d)\n", snap.CurrentAcademicYearName, snap.CurrentAcademicYearID)
	fmt.Printf("term:          %s (id %d)\n", snap.CurrentTermName, snap.CurrentTermID)
	fmt.Printf("years known:   %d, terms available: %d\n", len(snap.AcademicYears), len(snap.AvailableTerms))
}
