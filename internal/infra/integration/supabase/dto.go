package supabase

type uploadResponse struct {
	Key string `json:"Key"`
	ID  string `json:"Id"`
}

type errorResponse struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}
