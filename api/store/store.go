/* store.go
 * Contains the session store struct and NewStore function. The store is the single source
 * of truth for which accounts are logged in and which one is active. State is held in
 * memory and written through to MongoDB under fixed document keys on every mutation, so a
 * process restart rehydrates the same sessions. Account operations live in accounts.go.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"patota-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// sessionKey is the fixed _id under which the whole account list is persisted
	sessionKey = "patota:session"
	// groupKey is the fixed _id of the manually-entered default group id
	groupKey = "patota:default-group"
)

type Store struct {
	mu          sync.Mutex
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Session  *mongo.Collection
		Settings *mongo.Collection
	}

	accounts       []shared.Account
	activeUserID   string
	defaultGroupID string
}

// NewStore initialises the store, connects to MongoDB and rehydrates any persisted
// session state.
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns a pointer to the Store with previous sessions loaded, or an
// error if the connection or rehydration fails
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Session = db.Collection("session")
	s.Collections.Settings = db.Collection("settings")

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to rehydrate session state: %w", err)
	}
	return s, nil
}

// load reads the persisted session and settings documents back into memory. A missing
// document simply means a fresh install.
func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess sessionDoc
	err := s.Collections.Session.FindOne(context.TODO(), bson.M{"_id": sessionKey}).Decode(&sess)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if err == nil {
		s.accounts = sess.Accounts
		s.activeUserID = sess.ActiveUserID
	}

	var group groupDoc
	err = s.Collections.Settings.FindOne(context.TODO(), bson.M{"_id": groupKey}).Decode(&group)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if err == nil {
		s.defaultGroupID = group.GroupID
	}
	return nil
}

// persistSession writes the in-memory account list through to the fixed session
// document. Must be called with s.mu held. A store built without collections (unit
// tests) keeps state in memory only.
func (s *Store) persistSession() error {
	if s.Collections.Session == nil {
		return nil
	}
	doc := sessionDoc{ID: sessionKey, Accounts: s.accounts, ActiveUserID: s.activeUserID}
	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Session.ReplaceOne(context.TODO(), bson.M{"_id": sessionKey}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	return nil
}

// persistGroup writes the default group id document. Must be called with s.mu held.
func (s *Store) persistGroup() error {
	if s.Collections.Settings == nil {
		return nil
	}
	doc := groupDoc{ID: groupKey, GroupID: s.defaultGroupID}
	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Settings.ReplaceOne(context.TODO(), bson.M{"_id": groupKey}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to persist default group id: %w", err)
	}
	return nil
}
