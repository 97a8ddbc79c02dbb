package inputs_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
)

func TestDecodePayload(t *testing.T) {
	payload := `[
		{"id": "m1", "from": "store@example.com", "subject": "Order shipped", "body": "Your trail shoes are on the way."},
		{"id": "m2", "from": "school@example.com", "subject": "Pickup reminder", "snippet": "Pickup at 3pm."}
	]`

	messages, err := inputs.DecodePayload(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}
	if messages[0].ID != "m1" || messages[0].Body == "" {
		t.Errorf("message[0] = %+v, want m1 with body", messages[0])
	}
	if messages[1].Snippet != "Pickup at 3pm." {
		t.Errorf("message[1] snippet = %q", messages[1].Snippet)
	}
}

func TestDecodePayloadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "not json"},
		{"empty array", "[]"},
		{"missing id", `[{"body": "text"}]`},
		{"missing content", `[{"id": "m1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inputs.DecodePayload(strings.NewReader(tt.payload))
			if !errors.Is(err, inputs.ErrInvalidPayload) {
				t.Errorf("error = %v, want ErrInvalidPayload", err)
			}
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	payload := strings.Join([]string{
		"ID,From,Subject,Date,Summary",
		"m1,shop@example.com,Order confirmed,2026-08-01,Thanks for your order",
		"m2,gym@example.com,Membership renewal,2026-08-02,Your plan renews soon",
	}, "\n")

	messages, err := inputs.DecodeCSV(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}
	if messages[0].ID != "m1" || messages[0].From != "shop@example.com" {
		t.Errorf("message[0] = %+v, want m1 from shop@example.com", messages[0])
	}
	if messages[0].Snippet != "Thanks for your order" {
		t.Errorf("snippet = %q, want summary column mapped", messages[0].Snippet)
	}
}

func TestDecodeCSVFallbackIDs(t *testing.T) {
	payload := "subject,summary\nSale this weekend,Everything 20 percent off"

	messages, err := inputs.DecodeCSV(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if messages[0].ID != "email_0" {
		t.Errorf("ID = %q, want email_0", messages[0].ID)
	}
}

func TestDecodeCSVBodyColumn(t *testing.T) {
	payload := "id,body,summary\nm1,full text,short text"

	messages, err := inputs.DecodeCSV(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if messages[0].Body != "full text" {
		t.Errorf("body = %q, want full text", messages[0].Body)
	}
	if messages[0].Snippet != "" {
		t.Errorf("snippet = %q, want empty when body present", messages[0].Snippet)
	}
}

func TestDecodeCSVRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"header only", "id,subject,summary\n"},
		{"row without content", "id,subject\nm1,Only a subject"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inputs.DecodeCSV(strings.NewReader(tt.payload))
			if !errors.Is(err, inputs.ErrInvalidPayload) {
				t.Errorf("error = %v, want ErrInvalidPayload", err)
			}
		})
	}
}

func TestIsCSV(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        bool
	}{
		{"csv extension", "emails.csv", "", true},
		{"uppercase extension", "EMAILS.CSV", "application/octet-stream", true},
		{"csv content type", "emails", "text/csv", true},
		{"json file", "batch.json", "application/json", false},
		{"no hints", "batch", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inputs.IsCSV(tt.filename, tt.contentType); got != tt.want {
				t.Errorf("IsCSV(%q, %q) = %v, want %v", tt.filename, tt.contentType, got, tt.want)
			}
		})
	}
}
