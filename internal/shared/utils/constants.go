package utils

const (
	OrganizationName                      = "DealFlow"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"
)
