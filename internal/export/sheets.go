package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/storksoft/cashtrack/internal/auth"
	"github.com/storksoft/cashtrack/internal/common"
	"github.com/storksoft/cashtrack/internal/model"
	"github.com/storksoft/cashtrack/internal/rules"
)

// SheetsConfig configures the Google Sheets exporter. A session token is
// kept in TokenFile so the interactive consent flow runs once.
type SheetsConfig struct {
	ClientID        string
	ClientSecret    string
	TokenFile       string
	SpreadsheetID   string
	SpreadsheetName string
}

// Validate checks that the exporter has enough configuration to run.
func (c SheetsConfig) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("%w: sheets export requires sheets.client_id and sheets.client_secret", common.ErrMissingConfig)
	}
	if c.SpreadsheetID == "" && c.SpreadsheetName == "" {
		return fmt.Errorf("%w: sheets export requires a spreadsheet id or name", common.ErrInvalidConfig)
	}
	return nil
}

// SheetsWriter exports operation listings to a Google spreadsheet.
type SheetsWriter struct {
	service *sheets.Service
	config  SheetsConfig
}

// NewSheetsWriter authenticates against Google and returns a writer. The
// saved token is refreshed when possible; when no token exists the
// interactive consent flow runs in the browser.
func NewSheetsWriter(ctx context.Context, cfg SheetsConfig) (*SheetsWriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	token, err := googleToken(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, cfg.oauthConfig().TokenSource(ctx, token))
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsWriter{service: service, config: cfg}, nil
}

// Write replaces the spreadsheet contents with the given operations grouped
// by calendar day, newest day first. Returns the spreadsheet ID written to.
func (w *SheetsWriter) Write(ctx context.Context, ops []model.ListOperation) (string, error) {
	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", err
	}

	if _, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := prepareRows(ops)

	retryOpts := common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("failed to write data: %w", err)
	}

	if err := w.applyFormatting(ctx, spreadsheetID, len(values)); err != nil {
		slog.Warn("Failed to apply spreadsheet formatting", "error", err)
	}

	slog.Info("Exported operations to spreadsheet",
		"spreadsheet_id", spreadsheetID,
		"rows", len(values))

	return spreadsheetID, nil
}

func (c SheetsConfig) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost:8400/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

// googleToken loads the saved Google token, refreshing it if expired, or
// runs the interactive consent flow when no usable token exists.
func googleToken(ctx context.Context, cfg SheetsConfig) (*oauth2.Token, error) {
	if token, err := auth.LoadToken(cfg.TokenFile); err == nil {
		if token.Valid() {
			return token, nil
		}
		refreshed, refreshErr := cfg.oauthConfig().TokenSource(ctx, token).Token()
		if refreshErr == nil {
			if saveErr := auth.SaveToken(cfg.TokenFile, refreshed); saveErr != nil {
				slog.Warn("Failed to save refreshed Google token", "error", saveErr)
			}
			return refreshed, nil
		}
		slog.Info("Google token refresh failed, re-authenticating", "error", refreshErr)
	}

	return authenticateInteractive(ctx, cfg)
}

// authenticateInteractive runs the browser consent flow with a temporary
// localhost callback server, the same shape as the identity-provider login.
func authenticateInteractive(ctx context.Context, cfg SheetsConfig) (*oauth2.Token, error) {
	oauthConfig := cfg.oauthConfig()

	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errorChan <- fmt.Errorf("no authorization code received")
			_, _ = fmt.Fprint(w, "<html><body><h1>Authentication failed</h1><p>No authorization code received. Please try again.</p></body></html>")
			return
		}
		codeChan <- code
		_, _ = fmt.Fprint(w, "<html><body><h1>Authentication successful!</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})

	server := &http.Server{Addr: "localhost:8400", Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errorChan <- fmt.Errorf("failed to start callback server: %w", err)
		}
	}()

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	slog.Info("Google Sheets authentication required")
	slog.Info("Please visit this URL to authorize", "url", authURL)
	slog.Info("Waiting for authentication...")

	var authCode string
	select {
	case authCode = <-codeChan:
	case err := <-errorChan:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(5 * time.Minute):
		_ = server.Shutdown(ctx)
		return nil, fmt.Errorf("authentication timeout - no response received within 5 minutes")
	case <-ctx.Done():
		_ = server.Shutdown(context.Background())
		return nil, ctx.Err()
	}

	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("Error shutting down callback server", "error", err)
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if cfg.TokenFile != "" {
		if err := auth.SaveToken(cfg.TokenFile, token); err != nil {
			slog.Warn("Failed to save Google token", "error", err, "file", cfg.TokenFile)
		}
	}

	return token, nil
}

func (w *SheetsWriter) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		if _, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: w.config.SpreadsheetName,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: "Operations"}},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	slog.Info("Created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// prepareRows lays out the export: a title, then each calendar day as a
// header row followed by its operations.
func prepareRows(ops []model.ListOperation) [][]any {
	sorted := rules.SortByDateDescending(ops)
	groups := rules.GroupByCalendarDay(sorted)

	values := make([][]any, 0, len(sorted)+2*len(groups)+3)
	values = append(values,
		[]any{"Operations", fmt.Sprintf("%d total", len(sorted))},
		[]any{},
	)

	for _, group := range groups {
		values = append(values, []any{group.Label()})
		values = append(values, []any{"Date", "Type", "Category", "Account", "Place", "Description", "Amount"})
		for _, op := range group.Operations {
			category := ""
			if op.Category != nil {
				category = op.Category.Name
			}
			place := ""
			if op.Place != nil {
				place = op.Place.Description
			}
			amount, _ := SignedAmount(op).Float64()
			values = append(values, []any{
				op.OperationDate,
				DeriveType(op).Label(),
				category,
				AccountLabel(op),
				place,
				op.Description,
				amount,
			})
		}
		values = append(values, []any{})
	}

	return values
}

const sheetsBatchSize = 500

func (w *SheetsWriter) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += sheetsBatchSize {
		end := i + sheetsBatchSize
		if end > len(values) {
			end = len(values)
		}

		valueRange := &sheets.ValueRange{Values: values[i:end]}
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, fmt.Sprintf("A%d", i+1), valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		slog.Debug("Wrote batch", "start_row", i+1, "rows", end-i)
	}

	return nil
}

func (w *SheetsWriter) applyFormatting(ctx context.Context, spreadsheetID string, totalRows int) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 14,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 6,
					EndColumnIndex:   7,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "NUMBER",
							Pattern: "#,##0.00",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   7,
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 2,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	return err
}
