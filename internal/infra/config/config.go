// internal/infra/config/config.go
package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port     string
	GCPCreds string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Razorpay: the publishable key id ships to the client inside the payment
	// intent; the key secret stays server-side. The secret is taken from env
	// or, when RAZORPAY_KEY_SECRET_NAME is set, from Secret Manager.
	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayKeySecretName string

	StoreName string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "sristi-enterprises")

	return &Config{
		Port:     getenvDefault("PORT", "8080"),
		GCPCreds: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayKeySecretName: getenvDefault("RAZORPAY_KEY_SECRET_NAME", "razorpay-key-secret"),

		StoreName: getenvDefault("STORE_NAME", "Sristi Enterprises"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
