package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/client"
)

type (
	recordedRequest struct {
		Method    string
		Path      string
		Body      []byte
		Header    http.Header
		RequestID string
	}

	backendMock struct {
		mu       sync.Mutex
		status   int
		body     string
		requests []recordedRequest
	}
)

func (b *backendMock) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := ioutil.ReadAll(request.Body)

	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{
		Method:    request.Method,
		Path:      request.URL.Path,
		Body:      body,
		Header:    request.Header.Clone(),
		RequestID: request.Header.Get(client.RequestIDHeader),
	})
	b.mu.Unlock()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(b.status)
	_, _ = writer.Write([]byte(b.body))
}

func (b *backendMock) recorded() []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]recordedRequest(nil), b.requests...)
}

func newBackend(t *testing.T, status int, body string) (*backendMock, *client.Client) {
	backend := &backendMock{status: status, body: body}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	return backend, client.New(client.Config{
		URL:    server.URL + "/",
		Logger: zaptest.NewLogger(t),
	})
}

func TestClient_LastUpdate(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		asserts := require.New(t)
		backend, c := newBackend(t, http.StatusOK, `{"status":"success","last_updated":"2024-03-01T12:30:45.123456"}`)

		lastUpdate, err := c.LastUpdate(context.Background())

		asserts.NoError(err)
		asserts.Equal(converter.LastUpdate("2024-03-01T12:30:45.123456"), lastUpdate)

		requests := backend.recorded()
		asserts.Len(requests, 1)
		asserts.Equal(http.MethodGet, requests[0].Method)
		asserts.Equal(client.LastUpdatePath, requests[0].Path)
		asserts.Equal("application/json", requests[0].Header.Get("Accept"))
		_, err = uuid.Parse(requests[0].RequestID)
		asserts.NoError(err)
	})

	t.Run("No rates available", func(t *testing.T) {
		asserts := require.New(t)
		_, c := newBackend(t, http.StatusNotFound, `{"status":"error","message":"No rates available"}`)

		_, err := c.LastUpdate(context.Background())

		var bizErr *converter.BusinessError
		asserts.True(errors.As(err, &bizErr))
		asserts.Equal("No rates available", bizErr.Message)
		asserts.Equal(http.StatusNotFound, bizErr.HTTPStatus)
	})

	t.Run("Missing timestamp", func(t *testing.T) {
		asserts := require.New(t)
		_, c := newBackend(t, http.StatusOK, `{"status":"success"}`)

		_, err := c.LastUpdate(context.Background())

		asserts.True(errors.Is(err, client.ErrMissingField))
	})
}

func TestClient_UpdateRates(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		asserts := require.New(t)
		backend, c := newBackend(t, http.StatusOK, `{"status":"success","message":"Exchange rates updated successfully","last_updated":"2024-03-02T08:00:00"}`)

		lastUpdate, err := c.UpdateRates(context.Background())

		asserts.NoError(err)
		asserts.Equal(converter.LastUpdate("2024-03-02T08:00:00"), lastUpdate)

		requests := backend.recorded()
		asserts.Len(requests, 1)
		asserts.Equal(http.MethodPost, requests[0].Method)
		asserts.Equal(client.UpdateRatesPath, requests[0].Path)
		asserts.Empty(requests[0].Body)
	})

	t.Run("Business failure", func(t *testing.T) {
		asserts := require.New(t)
		_, c := newBackend(t, http.StatusInternalServerError, `{"status":"error","message":"Failed to update exchange rates"}`)

		_, err := c.UpdateRates(context.Background())

		var bizErr *converter.BusinessError
		asserts.True(errors.As(err, &bizErr))
		asserts.Equal(http.StatusInternalServerError, bizErr.HTTPStatus)
	})

	t.Run("Non JSON body", func(t *testing.T) {
		asserts := require.New(t)
		_, c := newBackend(t, http.StatusBadGateway, `<html>bad gateway</html>`)

		_, err := c.UpdateRates(context.Background())

		asserts.True(errors.Is(err, client.ErrInvalidResponse))

		var bizErr *converter.BusinessError
		asserts.False(errors.As(err, &bizErr))
	})
}

func TestClient_Convert(t *testing.T) {
	t.Parallel()

	t.Run("Sends exact payload", func(t *testing.T) {
		asserts := require.New(t)
		backend, c := newBackend(t, http.StatusOK, `{"status":"success","from_currency":"USD","to_currency":"EUR","amount":10,"result":9.2,"rate":0.92}`)

		result, err := c.Convert(context.Background(), converter.ConversionRequest{
			From:   converter.USD,
			To:     converter.EUR,
			Amount: 10,
		})

		asserts.NoError(err)
		asserts.Equal(converter.ConversionResult{Result: 9.2, Rate: 0.92}, result)

		requests := backend.recorded()
		asserts.Len(requests, 1)
		asserts.Equal(http.MethodPost, requests[0].Method)
		asserts.Equal(client.ConvertPath, requests[0].Path)
		asserts.Equal("application/json", requests[0].Header.Get("Content-Type"))
		asserts.JSONEq(`{"from_currency":"USD","to_currency":"EUR","amount":10}`, string(requests[0].Body))
	})

	t.Run("Random requests round trip", func(t *testing.T) {
		asserts := require.New(t)
		backend, c := newBackend(t, http.StatusOK, `{"status":"success","result":1,"rate":1}`)

		for i := 0; i < 10; i++ {
			var amount float64
			asserts.NoError(faker.FakeData(&amount))

			req := converter.ConversionRequest{
				From:   converter.Currencies[i%len(converter.Currencies)],
				To:     converter.Currencies[(i+3)%len(converter.Currencies)],
				Amount: amount,
			}

			_, err := c.Convert(context.Background(), req)
			asserts.NoError(err)

			requests := backend.recorded()
			var sent converter.ConversionRequest
			asserts.NoError(json.Unmarshal(requests[len(requests)-1].Body, &sent))
			asserts.Equal(req, sent)
		}
	})

	t.Run("Business failure carries message", func(t *testing.T) {
		asserts := require.New(t)
		message := faker.Sentence()
		payload, _ := json.Marshal(map[string]string{"status": "error", "message": message})
		_, c := newBackend(t, http.StatusNotFound, string(payload))

		_, err := c.Convert(context.Background(), converter.ConversionRequest{From: converter.USD, To: converter.EUR, Amount: 1})

		var bizErr *converter.BusinessError
		asserts.True(errors.As(err, &bizErr))
		asserts.Equal(message, bizErr.Error())
	})

	t.Run("Missing result", func(t *testing.T) {
		asserts := require.New(t)
		_, c := newBackend(t, http.StatusOK, `{"status":"success","rate":0.92}`)

		_, err := c.Convert(context.Background(), converter.ConversionRequest{From: converter.USD, To: converter.EUR, Amount: 1})

		asserts.True(errors.Is(err, client.ErrMissingField))
	})
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := client.New(client.Config{URL: url})

	_, err := c.LastUpdate(context.Background())
	asserts.Error(err)

	var bizErr *converter.BusinessError
	asserts.False(errors.As(err, &bizErr))
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	backend, c := newBackend(t, http.StatusOK, `{"status":"success","last_updated":"2024-03-01T12:30:45"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.UpdateRates(ctx)

	asserts.True(errors.Is(err, context.Canceled))
	asserts.Empty(backend.recorded())
}
