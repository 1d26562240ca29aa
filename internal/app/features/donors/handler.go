// internal/app/features/donors/handler.go
package donors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/app/system/paging"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"
)

// SheetConfig locates the donation roster inside a Google Sheets
// spreadsheet. The sheet is maintained by the finance team outside this
// application; the page only reads it.
type SheetConfig struct {
	SpreadsheetID string
	Range         string
	APIKey        string
}

// Handler renders the public donor listing ("Thiện nguyện").
type Handler struct {
	Cfg    SheetConfig
	Log    *zap.Logger
	Client *http.Client

	// baseURL is overridden in tests to hit a local server.
	baseURL string
}

func NewHandler(cfg SheetConfig, logger *zap.Logger) *Handler {
	return &Handler{
		Cfg:     cfg,
		Log:     logger,
		Client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://sheets.googleapis.com",
	}
}

// Donor is one row of the donation roster.
type Donor struct {
	Name    string
	Amount  string
	Date    string
	Message string
}

// sheetValues mirrors the Sheets API values response.
type sheetValues struct {
	Values [][]string `json:"values"`
}

// fetchDonors pulls the configured values range. The first row is the
// header and is skipped; short rows pad with empty cells.
func (h *Handler) fetchDonors(ctx context.Context) ([]Donor, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		h.baseURL,
		url.PathEscape(h.Cfg.SpreadsheetID),
		url.PathEscape(h.Cfg.Range),
		url.QueryEscape(h.Cfg.APIKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets api returned %d", resp.StatusCode)
	}

	var sv sheetValues
	if err := json.NewDecoder(resp.Body).Decode(&sv); err != nil {
		return nil, err
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var donors []Donor
	for i, row := range sv.Values {
		if i == 0 {
			continue // header row
		}
		d := Donor{
			Name:    cell(row, 0),
			Amount:  cell(row, 1),
			Date:    cell(row, 2),
			Message: cell(row, 3),
		}
		if d.Name == "" {
			continue
		}
		donors = append(donors, d)
	}
	return donors, nil
}

type pageData struct {
	formutil.Base
	Donors     []Donor
	Query      string
	Page       paging.Page
	PrevPage   int
	NextPage   int
	FetchError bool
}

// ServeList handles GET /donors with optional ?q= search over donor names.
// The sheet is fetched per view; a failed fetch renders the page with a
// localized inline error instead of an error page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(query.Get(r, "q"))
	page := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	data := pageData{Query: q}
	formutil.SetBase(&data.Base, r, "Thiện nguyện", "/")

	donors, err := h.fetchDonors(ctx)
	if err != nil {
		h.Log.Warn("donor sheet fetch failed", zap.Error(err))
		data.FetchError = true
	}

	if q != "" {
		fq := text.Fold(q)
		filtered := donors[:0:0]
		for _, d := range donors {
			if strings.Contains(text.Fold(d.Name), fq) {
				filtered = append(filtered, d)
			}
		}
		donors = filtered
	}

	data.Donors, data.Page = paging.Slice(donors, page, paging.DonorPageSize)
	data.PrevPage = data.Page.Number - 1
	data.NextPage = data.Page.Number + 1

	templates.Render(w, r, "donor_list", data)
}
