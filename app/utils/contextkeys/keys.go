package contextkeys

type RequestId struct{}

type TransactionContextKey struct{}

type HttpClientStartsAt struct{}

type HttpClientRequestBody struct{}
