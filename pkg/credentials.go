package pkg

import "encoding/base64"

// EncodeCredentials builds the value for a basic Authorization header from a
// client id/secret pair, as required by the Cobre token endpoint.
func EncodeCredentials(clientID, clientSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
}
