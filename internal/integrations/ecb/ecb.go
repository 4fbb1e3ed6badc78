package ecb

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Jacopo21/gutmann-privatebank/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// ReferenceRates holds one day of ECB euro foreign-exchange reference rates
type ReferenceRates struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client handles integration with the European Central Bank rate feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new ECB client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.ECBURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch downloads the daily reference rate document
func (c *Client) fetch() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("ECB XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse extracts the rate date and currency rates from the feed
func (c *Client) parseXMLResponse(rawBody []byte) (*ReferenceRates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	dayCube := doc.FindElement("//Cube/Cube[@time]")
	if dayCube == nil {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := &ReferenceRates{
		Date:  dayCube.SelectAttrValue("time", ""),
		Rates: make(map[string]float64),
	}

	for _, cube := range dayCube.FindElements("./Cube[@currency]") {
		currency := cube.SelectAttrValue("currency", "")
		rate, err := strconv.ParseFloat(cube.SelectAttrValue("rate", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		rates.Rates[currency] = rate
	}

	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("no currency rates found in XML")
	}
	return rates, nil
}

// GetReferenceRates retrieves the current daily reference rates from the ECB
func (c *Client) GetReferenceRates() (*ReferenceRates, error) {
	body, err := c.fetch()
	if err != nil {
		return nil, err
	}

	rates, err := c.parseXMLResponse(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved %d ECB reference rates for %s", len(rates.Rates), rates.Date)
	return rates, nil
}
