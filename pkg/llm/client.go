package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external PRD generation service. The service is an
// opaque HTTP dependency: it receives the document skeleton and returns the
// generated sections as structured JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateRequest is the skeleton sent to the generation service. Personnel
// are sent by name; ids mean nothing outside this backend.
type GenerateRequest struct {
	DocumentVersion string              `json:"document_version"`
	ProductName     string              `json:"product_name"`
	DocumentOwners  []string            `json:"document_owner"`
	Developers      []string            `json:"developer"`
	Stakeholders    []string            `json:"stakeholders"`
	ProjectOverview string              `json:"project_overview"`
	DarciRoles      map[string][]string `json:"darci_roles"`
	StartDate       string              `json:"start_date"`
	EndDate         string              `json:"end_date"`
}

type GenerateResponse struct {
	Header struct {
		DocumentVersion string `json:"document_version"`
		ProductName     string `json:"product_name"`
		CreatedDate     string `json:"created_date"`
	} `json:"header"`
	Overview struct {
		Sections []Section `json:"sections"`
	} `json:"overview"`
	Darci struct {
		Roles []DarciRole `json:"roles"`
	} `json:"darci"`
	ProjectTimeline struct {
		Phases []TimelinePhase `json:"phases"`
	} `json:"project_timeline"`
	SuccessMetrics struct {
		Metrics []SuccessMetric `json:"metrics"`
	} `json:"success_metrics"`
	UserStories struct {
		Stories []UserStory `json:"stories"`
	} `json:"user_stories"`
}

type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type DarciRole struct {
	Name       string `json:"name"`
	Guidelines string `json:"guidelines"`
}

type TimelinePhase struct {
	TimePeriod string `json:"time_period"`
	Activity   string `json:"activity"`
	PIC        string `json:"pic"`
}

type SuccessMetric struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Current    string `json:"current"`
	Target     string `json:"target"`
}

type UserStory struct {
	Title              string `json:"title"`
	UserStory          string `json:"user_story"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
	Priority           string `json:"priority"`
}

// GeneratePRD sends the skeleton and decodes the generated document. An
// incomplete response is rejected rather than stored half-filled.
func (c *Client) GeneratePRD(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-prd", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generation service error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var generated GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}

	if len(generated.Overview.Sections) == 0 ||
		len(generated.ProjectTimeline.Phases) == 0 ||
		len(generated.SuccessMetrics.Metrics) == 0 ||
		len(generated.UserStories.Stories) == 0 {
		return nil, fmt.Errorf("generation service returned an incomplete document")
	}

	return &generated, nil
}
