package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// SmokeValidator exercises the running storefront API end to end. It is a
// deployment check, not a test suite: it hits the live server and fails on
// the first surface that misbehaves.
type SmokeValidator struct {
	baseURL string
}

func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{baseURL: baseURL}
}

// ValidateAll walks the public endpoints in dependency order.
func (v *SmokeValidator) ValidateAll() error {
	log.Println("Starting API smoke validation...")

	if err := v.validateStatus(); err != nil {
		return fmt.Errorf("status validation failed: %w", err)
	}
	if err := v.validateCatalog(); err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}
	if err := v.validateCartFlow(); err != nil {
		return fmt.Errorf("cart validation failed: %w", err)
	}

	log.Println("All endpoints validated successfully")
	return nil
}

func (v *SmokeValidator) validateStatus() error {
	resp, err := v.get("/api/status")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/status returned %d", resp.StatusCode)
	}

	var status struct {
		BackendAvailable *bool `json:"backend_available"`
		Degraded         *bool `json:"degraded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("status body is not JSON: %w", err)
	}
	if status.BackendAvailable == nil || status.Degraded == nil {
		return fmt.Errorf("status body is missing availability fields")
	}
	log.Printf("Status OK (degraded=%v)", *status.Degraded)
	return nil
}

func (v *SmokeValidator) validateCatalog() error {
	for _, path := range []string{
		"/api/events/active",
		"/api/events/upcoming",
		"/api/categories",
		"/api/banners",
	} {
		resp, err := v.get(path)
		if err != nil {
			return err
		}
		var body struct {
			Data []json.RawMessage `json:"data"`
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("GET %s: body is not a data envelope: %w", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s returned %d", path, resp.StatusCode)
		}
		log.Printf("GET %s OK (%d items)", path, len(body.Data))
	}
	return nil
}

// validateCartFlow opens a cart against the first active event and walks the
// quantity and holder surfaces. No checkout is attempted: the validator runs
// anonymously and a purchase against a live backend would not be idempotent.
func (v *SmokeValidator) validateCartFlow() error {
	resp, err := v.get("/api/events/active")
	if err != nil {
		return err
	}
	var events struct {
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	err = json.NewDecoder(resp.Body).Decode(&events)
	resp.Body.Close()
	if err != nil {
		return err
	}
	if len(events.Data) == 0 {
		log.Println("No active events, skipping cart validation")
		return nil
	}

	resp, err = v.post("/api/carts", map[string]any{"event_id": events.Data[0].ID})
	if err != nil {
		return err
	}
	var cartView struct {
		ID string `json:"id"`
	}
	err = json.NewDecoder(resp.Body).Decode(&cartView)
	resp.Body.Close()
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated || cartView.ID == "" {
		return fmt.Errorf("POST /api/carts returned %d", resp.StatusCode)
	}

	resp, err = v.get("/api/carts/" + cartView.ID)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/carts/%s returned %d", cartView.ID, resp.StatusCode)
	}

	log.Printf("Cart flow OK (cart %s)", cartView.ID)
	return nil
}

func (v *SmokeValidator) get(path string) (*http.Response, error) {
	resp, err := http.Get(v.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return resp, nil
}

func (v *SmokeValidator) post(path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(v.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return resp, nil
}

// RunValidation is the entry point for the "validate" CLI argument.
func RunValidation() {
	validator := NewSmokeValidator("http://localhost:8080")
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
}
