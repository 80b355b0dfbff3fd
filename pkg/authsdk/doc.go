// Package authsdk is a typed client for the Wukong auth service. Other
// console components use it instead of hand-rolled HTTP calls.
//
// Unauthenticated operations hang off SDKClient:
//
//	client := authsdk.NewSDKClient("http://localhost:8080")
//	code, err := client.Authenticate(ctx, authsdk.AuthenticateRequest{
//		Provider:       "google",
//		ProviderUserID: "109738",
//		ClientID:       "console",
//		RedirectURI:    "https://console.example.com/callback",
//	})
//	tokens, err := client.ExchangeCode(ctx, code.Code, "console",
//		"https://console.example.com/callback")
//
// Email logins complete in one round trip and return a cookie-backed
// Session for the account endpoints (MFA, device sessions, audit log):
//
//	session, err := client.AuthenticateWithEmail(ctx, "ada@example.com", "Ada", "console")
//	status, err := session.MFAStatus(ctx)
//
// Errors from the service surface as *APIError; use errors.As and the
// ErrorCode* constants to branch on them.
package authsdk
