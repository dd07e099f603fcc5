// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "sristi/internal/infra/config"
	firestoreinfra "sristi/internal/infra/firestore"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore / FirebaseAuth / SecretManager)
// - owns env/config-resolved runtime settings (Razorpay keys, store name)
//
// Infra must NOT depend on routers, handlers, or usecases.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestoreinfra.ClientWrapper
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client

	// Runtime settings (resolved once)
	RazorpayKeyID     string
	RazorpayKeySecret string
	StoreName         string
}

// NewInfra initializes shared infra.
// Firestore is strict (return error). Firebase Auth and Secret Manager are
// best-effort (warn + continue): auth-protected routes fail closed and the
// Razorpay secret falls back to the environment.
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
		StoreName: cfg.StoreName,
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] using credentials file for GCP clients")
	} else {
		log.Printf("[shared.infra] using Application Default Credentials")
	}

	// 1) Firestore (strict)
	{
		fs, err := firestoreinfra.NewClient(ctx, projectID, credFile)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore init failed (project=%s): %w", projectID, err)
		}
		inf.Firestore = fs
	}

	// 2) Firebase App/Auth (best-effort)
	{
		fbCfg := &firebase.Config{ProjectID: strings.TrimSpace(cfg.FirebaseProjectID)}
		fbApp, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 3) Secret Manager (best-effort)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (falling back to env secrets)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 4) Razorpay keys (env first, then Secret Manager)
	inf.RazorpayKeyID = strings.TrimSpace(cfg.RazorpayKeyID)
	inf.RazorpayKeySecret = strings.TrimSpace(cfg.RazorpayKeySecret)
	if inf.RazorpayKeySecret == "" && inf.SecretManager != nil {
		secret, err := inf.accessSecret(ctx, cfg.RazorpayKeySecretName)
		if err != nil {
			log.Printf("[shared.infra] WARN: razorpay key secret unavailable: %v (payment relay disabled)", err)
		} else {
			inf.RazorpayKeySecret = secret
			log.Printf("[shared.infra] razorpay key secret loaded from Secret Manager")
		}
	}
	if inf.RazorpayKeyID == "" || inf.RazorpayKeySecret == "" {
		log.Printf("[shared.infra] WARN: razorpay credentials incomplete (keyId set=%t secret set=%t)",
			inf.RazorpayKeyID != "", inf.RazorpayKeySecret != "")
	}

	if inf.Firestore == nil || inf.Firestore.Client == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: firestore client is nil after initialization (unexpected)")
	}

	return inf, nil
}

func (i *Infra) accessSecret(ctx context.Context, secretID string) (string, error) {
	sid := strings.TrimSpace(secretID)
	if sid == "" {
		return "", errors.New("shared.infra: secret id is empty")
	}

	name := "projects/" + i.ProjectID + "/secrets/" + sid + "/versions/latest"
	resp, err := i.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("shared.infra: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("shared.infra: empty secret payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
		i.Firestore = nil
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
		i.SecretManager = nil
	}
	return nil
}
