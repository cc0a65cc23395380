package rates

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/siperka/siperka_backend/internal/core/domain"
)

const soapEnvelope = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:tns="http://www.bi.go.id/">
  <soap:Body>
    <tns:getSubKursJisdor2/>
  </soap:Body>
</soap:Envelope>`

// jisdorResponse maps the SOAP reply down to the single Rate field we need.
// Namespaces are ignored; element local names are enough to navigate the body.
type jisdorResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Rate    string   `xml:"Body>getSubKursJisdor2Response>getSubKursJisdor2Result>Rate"`
}

// BISoapProvider is the primary source: the Bank Indonesia SOAP webservice
// publishing the official JISDOR reference rate.
type BISoapProvider struct {
	client  *http.Client
	baseURL string
}

// NewBISoapProvider creates a BISoapProvider against the given endpoint.
func NewBISoapProvider(baseURL string, timeout time.Duration) *BISoapProvider {
	return &BISoapProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (p *BISoapProvider) Name() domain.RateSource {
	return domain.RateSourceBISoap
}

// FetchCurrent calls getSubKursJisdor2 and parses the Rate field. The service
// formats the decimal separator as a comma.
func (p *BISoapProvider) FetchCurrent(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, strings.NewReader(soapEnvelope))
	if err != nil {
		return 0, fmt.Errorf("build BI SOAP request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://www.bi.go.id/getSubKursJisdor2")

	res, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call BI SOAP service: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("BI SOAP service returned status %d", res.StatusCode)
	}

	var parsed jisdorResponse
	if err := xml.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode BI SOAP response: %w", err)
	}
	if parsed.Rate == "" {
		return 0, fmt.Errorf("BI SOAP response contains no rate")
	}

	value, err := strconv.ParseFloat(strings.Replace(parsed.Rate, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("parse BI SOAP rate %q: %w", parsed.Rate, err)
	}
	if !validRate(value) {
		return 0, fmt.Errorf("invalid rate value from BI SOAP: %v", value)
	}
	return value, nil
}

// kursPattern matches the first Indonesian-formatted amount after a "USD"
// label, e.g. "16.652,00". Assumes "." thousands and "," decimal separators;
// a format change on the BI page breaks this silently, which is why the
// scrape sits behind the SOAP service in the chain.
var kursPattern = regexp.MustCompile(`(?i)USD[^0-9]*([0-9.]+,[0-9]{2})`)

// BIHTMLProvider is the secondary source: a scrape of the public BI JISDOR
// statistics page, used when the SOAP service is down.
type BIHTMLProvider struct {
	client  *http.Client
	baseURL string
}

// NewBIHTMLProvider creates a BIHTMLProvider against the given page URL.
func NewBIHTMLProvider(baseURL string, timeout time.Duration) *BIHTMLProvider {
	return &BIHTMLProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (p *BIHTMLProvider) Name() domain.RateSource {
	return domain.RateSourceBIHTML
}

// FetchCurrent downloads the statistics page and extracts the first value
// matching the locale currency pattern.
func (p *BIHTMLProvider) FetchCurrent(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build BI page request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; kurs-fetcher/1.0)")
	req.Header.Set("Accept-Language", "id,en;q=0.8")

	res, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch BI page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("BI page returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, fmt.Errorf("read BI page: %w", err)
	}

	match := kursPattern.FindSubmatch(body)
	if match == nil {
		return 0, fmt.Errorf("no rate value found on BI page")
	}

	normalized := strings.ReplaceAll(string(match[1]), ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("parse BI page rate %q: %w", match[1], err)
	}
	if !validRate(value) {
		return 0, fmt.Errorf("invalid rate value from BI page: %v", value)
	}
	return value, nil
}
