package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteFiles = RouteApiV1 + "/files"
	RouteFile  = RouteFiles + "/:file_id"

	// link routes carry no auth: the link id is the capability
	RouteLinks    = RouteApiV1 + "/links"
	RouteDownload = RouteLinks + "/:link_id/download"
	RouteUpload   = RouteLinks + "/:link_id/upload"

	RouteAccounts = RouteApiV1 + "/accounts"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
