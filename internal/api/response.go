package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// preflightMaxAge is how long browsers may cache the preflight answer (24h)
const preflightMaxAge = "86400"

// result is a successful dispatch outcome
type result struct {
	status int
	body   interface{}
}

func preflightResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Max-Age":       preflightMaxAge,
		},
		Body:            "",
		IsBase64Encoded: false,
	}
}

func jsonResponse(status int, body interface{}) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Error: err.Error()})
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body:            string(data),
		IsBase64Encoded: false,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// toResponse is the single place where dispatch outcomes become responses
func toResponse(res *result, err error) events.APIGatewayProxyResponse {
	if err != nil {
		status, msg := classify(err)
		return jsonResponse(status, errorBody{Error: msg})
	}
	return jsonResponse(res.status, res.body)
}
