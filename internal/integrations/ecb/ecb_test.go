package ecb

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jacopo21/gutmann-privatebank/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<gesmes:Sender>
		<gesmes:name>European Central Bank</gesmes:name>
	</gesmes:Sender>
	<Cube>
		<Cube time="2026-08-28">
			<Cube currency="USD" rate="1.0832"/>
			<Cube currency="CHF" rate="0.9421"/>
			<Cube currency="GBP" rate="0.8515"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func newTestClient(url string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(&config.Config{ECBURL: url}, logger)
}

func TestGetReferenceRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	rates, err := newTestClient(server.URL).GetReferenceRates()
	require.NoError(t, err)

	assert.Equal(t, "2026-08-28", rates.Date)
	require.Len(t, rates.Rates, 3)
	assert.Equal(t, 1.0832, rates.Rates["USD"])
	assert.Equal(t, 0.9421, rates.Rates["CHF"])
	assert.Equal(t, 0.8515, rates.Rates["GBP"])
}

func TestGetReferenceRatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetReferenceRates()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}

func TestGetReferenceRatesMalformedXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<not-xml"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetReferenceRates()
	assert.Error(t, err)
}

func TestGetReferenceRatesEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><Envelope><Cube></Cube></Envelope>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetReferenceRates()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rate data")
}
