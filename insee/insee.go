// Package insee downloads INSEE index series, like the housing price indices,
// used to revalue properties.
package insee

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/immo"
	"github.com/etnz/immo/date"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the INSEE macro-economic database.
const DefaultBaseURL = "https://bdm.insee.fr/series"

const lastUpdateLayout = "02/01/2006 15:04"

// Client downloads series from the INSEE database.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     logrus.FieldLogger
}

// New returns a client on the INSEE database whose responses are cached on
// disk for the day.
func New(log logrus.FieldLogger) *Client {
	return &Client{BaseURL: DefaultBaseURL, HTTP: daily(log), Log: log}
}

// Series holds an INSEE time series.
type Series struct {
	Libelle    string
	IDBank     string
	LastUpdate time.Time
	Index      *immo.IndexSeries
}

// Fetch downloads the series idBank between from and to.
func (c *Client) Fetch(ctx context.Context, idBank string, from, to date.Month) (*Series, error) {
	startQuarter := (int(from.Month())-1)/3 + 1
	endQuarter := (int(to.Month())-1)/3 + 1

	url := fmt.Sprintf("%s/%s/csv?lang=fr&ordre=antechronologique&transposition=donneescolonne&periodeDebut=%d&anneeDebut=%d&periodeFin=%d&anneeFin=%d&revision=sansrevisions",
		c.BaseURL,
		idBank,
		startQuarter,
		from.Year(),
		endQuarter,
		to.Year(),
	)
	c.Log.WithField("url", url).Debug("downloading from INSEE")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: %w", idBank, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: received status %s", idBank, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive from INSEE response: %w", err)
	}

	var foundFiles []string
	for _, f := range zipReader.File {
		foundFiles = append(foundFiles, f.Name)
		if f.Name != "valeurs_trimestrielles.csv" && f.Name != "valeurs_mensuelles.csv" {
			continue
		}
		c.Log.WithField("file", f.Name).Debug("found INSEE values")
		csvFile, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open '%s' from zip archive: %w", f.Name, err)
		}
		defer csvFile.Close()
		return ParseSeries(csvFile)
	}

	return nil, fmt.Errorf("could not find a values file (mensuelles or trimestrielles) in downloaded zip file for ID %s (found: %s)", idBank, strings.Join(foundFiles, ", "))
}

// parsePeriod parses a string like "2025-T2" or "2025-08" into the last month
// of that period.
func parsePeriod(s string) (date.Month, error) {
	if strings.Contains(s, "-T") {
		return parseQuarter(s)
	}

	parts := strings.Split(s, "-")
	if len(parts) == 2 {
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return date.Month{}, fmt.Errorf("invalid year in monthly date %q: %w", s, err)
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return date.Month{}, fmt.Errorf("invalid month in monthly date %q", s)
		}
		return date.NewMonth(year, time.Month(month)), nil
	}
	return date.Month{}, fmt.Errorf("unrecognized insee date format: %q", s)
}

// parseQuarter parses a string like "2025-T2" into the last month of that
// quarter.
func parseQuarter(s string) (date.Month, error) {
	parts := strings.Split(s, "-T")
	if len(parts) != 2 {
		return date.Month{}, fmt.Errorf("invalid quarterly date format: %q", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return date.Month{}, fmt.Errorf("invalid year in quarterly date %q: %w", s, err)
	}

	quarter, err := strconv.Atoi(parts[1])
	if err != nil || quarter < 1 || quarter > 4 {
		return date.Month{}, fmt.Errorf("invalid quarter in quarterly date %q", s)
	}
	return date.NewMonth(year, time.Month(quarter*3)), nil
}

// ParseSeries reads the INSEE CSV format.
func ParseSeries(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) < 4 {
		return nil, fmt.Errorf("not enough records in csv to parse series")
	}

	series := &Series{
		Libelle: records[0][1],
		IDBank:  records[1][1],
	}
	series.Index = &immo.IndexSeries{ID: series.IDBank}

	series.LastUpdate, err = time.Parse(lastUpdateLayout, records[2][1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse last update date %q: %w", records[2][1], err)
	}

	for i := 4; i < len(records); i++ {
		if len(records[i]) < 2 || records[i][1] == "" {
			continue
		}
		m, err := parsePeriod(records[i][0])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value %q for date %q: %w", records[i][1], records[i][0], err)
		}
		series.Index.Append(m, val)
	}
	return series, nil
}

// ReadFile parses the INSEE CSV file at path.
func ReadFile(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ParseSeries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteCSV writes s in the INSEE CSV format, most recent month first, so that
// ParseSeries can read it back.
func (s *Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	records := [][]string{
		{"Libellé", s.Libelle},
		{"idBank", s.IDBank},
		{"Dernière mise à jour", s.LastUpdate.Format(lastUpdateLayout)},
		{"Période", ""},
	}
	var points [][]string
	for m, v := range s.Index.Values() {
		points = append(points, []string{m.String(), strconv.FormatFloat(v, 'f', -1, 64)})
	}
	for i := len(points) - 1; i >= 0; i-- {
		records = append(records, points[i])
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}
