package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"foodwaste/internal/cache"
	"foodwaste/internal/core"
	ports "foodwaste/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const (
	rowCacheSize = 5000
	rowCacheTTL  = 10 * time.Minute
)

// Options configures the Sheets mirror.
type Options struct {
	SpreadsheetID      string
	EntriesSheet       string // default "Waste Entries"
	SummarySheet       string // default "Summary"
	ServiceAccountJSON string
	ServiceAccountFile string
}

// Client mirrors entries into one tab (one row per entry, id in column A)
// and the statistics snapshot into a second tab.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	entriesSheet  string
	summarySheet  string

	// id -> 1-based row number in entriesSheet
	rows *cache.LRUCache[int]

	mu      sync.Mutex
	sheetID *int64
}

// Ensure interface conformance
var (
	_ ports.EntryMirror  = (*Client)(nil)
	_ ports.MirrorReader = (*Client)(nil)
)

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.EntriesSheet) == "" {
		o.EntriesSheet = "Waste Entries"
	}
	if strings.TrimSpace(o.SummarySheet) == "" {
		o.SummarySheet = "Summary"
	}
	return o
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	opts = opts.withDefaults()
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	creds, err := loadCredentials(ctx, opts)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets service created successfully",
		"entries_sheet", opts.EntriesSheet,
		"summary_sheet", opts.SummarySheet)
	return newClient(svc, opts), nil
}

func newClient(svc *gsheet.Service, opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		entriesSheet:  opts.EntriesSheet,
		summarySheet:  opts.SummarySheet,
		rows:          cache.NewLRUCache[int](rowCacheSize, rowCacheTTL),
	}
}

// RowCache exposes the id->row cache so callers can register it for cleanup.
func (c *Client) RowCache() *cache.LRUCache[int] { return c.rows }

// loadCredentials resolves service account JSON from inline config, a file,
// or GOOGLE_APPLICATION_CREDENTIALS, in that order.
func loadCredentials(ctx context.Context, opts Options) ([]byte, error) {
	inline := strings.TrimSpace(opts.ServiceAccountJSON)
	file := strings.TrimSpace(opts.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		slog.DebugContext(ctx, "Using inline JSON credentials", "json_length", len(inline))
		return []byte(inline), nil
	case file != "":
		slog.DebugContext(ctx, "Reading credentials from file", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	}
	return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
}

// Upsert rewrites the entry's row in place, or appends one when the id is
// not yet mirrored.
func (c *Client) Upsert(ctx context.Context, e core.WasteEntry) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	row, found, err := c.findRow(ctx, e.ID)
	if err != nil {
		return err
	}
	values := &gsheet.ValueRange{Values: [][]any{entryRow(e)}}

	if found {
		rng := fmt.Sprintf("%s!A%d:%s%d", quoteSheet(c.entriesSheet), row, lastColumn, row)
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, values).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update row %d in sheet %s: %w", row, c.entriesSheet, err)
		}
		return nil
	}

	if err := c.ensureHeader(ctx); err != nil {
		return err
	}
	rng := fmt.Sprintf("%s!A:%s", quoteSheet(c.entriesSheet), lastColumn)
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, values).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", c.entriesSheet, err)
	}
	if resp.Updates != nil {
		if n, ok := rowFromRange(resp.Updates.UpdatedRange); ok {
			c.rows.Set(e.ID, n)
		}
	}
	return nil
}

// Remove deletes the entry's row. Unknown ids are ignored.
func (c *Client) Remove(ctx context.Context, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	row, found, err := c.findRow(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		slog.DebugContext(ctx, "Entry not mirrored, nothing to remove", "id", id)
		return nil
	}
	sheetID, err := c.entriesSheetID(ctx)
	if err != nil {
		return err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d in sheet %s: %w", row, c.entriesSheet, err)
	}
	// Every row below shifted up by one.
	c.rows.Clear()
	return nil
}

// ReplaceAll rewrites the entries tab from scratch.
func (c *Client) ReplaceAll(ctx context.Context, entries []core.WasteEntry) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	sheet := quoteSheet(c.entriesSheet)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, sheet+"!A:"+lastColumn, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.entriesSheet, err)
	}

	values := make([][]any, 0, len(entries)+1)
	values = append(values, headerRow())
	for _, e := range entries {
		values = append(values, entryRow(e))
	}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!A1", &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write sheet %s: %w", c.entriesSheet, err)
	}

	c.rows.Clear()
	for i, e := range entries {
		c.rows.Set(e.ID, i+2)
	}
	return nil
}

// WriteStatistics overwrites the summary tab.
func (c *Client) WriteStatistics(ctx context.Context, s core.Statistics) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	sheet := quoteSheet(c.summarySheet)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, sheet+"!A:B", &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.summarySheet, err)
	}
	vr := &gsheet.ValueRange{Values: statisticsRows(s, time.Now().UTC())}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write sheet %s: %w", c.summarySheet, err)
	}
	return nil
}

// MirroredEntries reads back every row that parses as an entry.
func (c *Client) MirroredEntries(ctx context.Context) ([]core.WasteEntry, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:%s", quoteSheet(c.entriesSheet), lastColumn)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([]core.WasteEntry, 0, len(resp.Values))
	for _, row := range resp.Values {
		if e, ok := parseEntryRow(toStrings(row)); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// findRow resolves an id to its row, trusting the cache only after the
// cached row is confirmed to still hold that id.
func (c *Client) findRow(ctx context.Context, id string) (int, bool, error) {
	sheet := quoteSheet(c.entriesSheet)
	if row, ok := c.rows.Get(id); ok {
		rng := fmt.Sprintf("%s!A%d", sheet, row)
		resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
		if err == nil && len(resp.Values) > 0 && len(resp.Values[0]) > 0 &&
			strings.TrimSpace(fmt.Sprint(resp.Values[0][0])) == id {
			return row, true, nil
		}
		c.rows.Delete(id)
	}

	rng := sheet + "!A:A"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, false, fmt.Errorf("read %s: %w", rng, err)
	}
	row, ok := rowIndexOf(resp.Values, id)
	if ok {
		c.rows.Set(id, row)
	}
	return row, ok, nil
}

func (c *Client) ensureHeader(ctx context.Context) error {
	rng := quoteSheet(c.entriesSheet) + "!A1:" + lastColumn + "1"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header %s: %w", rng, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: [][]any{headerRow()}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header %s: %w", rng, err)
	}
	return nil
}

func (c *Client) entriesSheetID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheetID != nil {
		return *c.sheetID, nil
	}
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == c.entriesSheet {
			id := s.Properties.SheetId
			c.sheetID = &id
			return id, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet", c.entriesSheet)
}
