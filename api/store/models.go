/* models.go
 * Contains the structs that mirror the persisted session documents
 */

package store

import "patota-bot/api/shared"

// sessionDoc is the single persisted record holding every stored account and the
// active-account pointer
type sessionDoc struct {
	ID           string           `bson:"_id"`
	Accounts     []shared.Account `bson:"accounts"`
	ActiveUserID string           `bson:"activeuserid,omitempty"`
}

// groupDoc is the persisted scalar holding the manually-entered default group id
type groupDoc struct {
	ID      string `bson:"_id"`
	GroupID string `bson:"groupid"`
}
