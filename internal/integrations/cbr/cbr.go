// Package cbr fetches the central bank key rate. The rate is shown to the
// operator as a reference point when choosing a savings interest rate; it
// feeds no conversion or pricing logic.
package cbr

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/config"
)

const soapEnvelope = `<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
	<soap12:Body>
		<KeyRate xmlns="http://web.cbr.ru/">
			<fromDate>%s</fromDate>
			<ToDate>%s</ToDate>
		</KeyRate>
	</soap12:Body>
</soap12:Envelope>`

// Client talks to the Central Bank of Russia web service.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a key-rate client from configuration.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:    cfg.CBRURL,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// KeyRate returns the most recent key rate published over the last 30 days,
// in percent per annum.
func (c *Client) KeyRate() (float64, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	body := fmt.Sprintf(soapEnvelope, from.Format("2006-01-02"), to.Format("2006-01-02"))

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewBufferString(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("key rate request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("CBR XML response: %s", raw)

	rate, err := parseKeyRate(raw)
	if err != nil {
		return 0, err
	}
	c.log.Infof("retrieved key rate: %.2f%%", rate)
	return rate, nil
}

func parseKeyRate(raw []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}
	entries := doc.FindElements("//diffgram/KeyRate/KR")
	if len(entries) == 0 {
		return 0, fmt.Errorf("no key rate data in response")
	}
	rateElement := entries[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element not found")
	}
	var rate float64
	if _, err := fmt.Sscanf(rateElement.Text(), "%f", &rate); err != nil {
		return 0, fmt.Errorf("failed to parse rate %q: %w", rateElement.Text(), err)
	}
	return rate, nil
}
