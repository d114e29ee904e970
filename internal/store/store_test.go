package store

import (
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustProfile(t *testing.T, db *DB, username string) *Profile {
	t.Helper()
	p, err := db.CreateProfile(username, "hash-"+username)
	if err != nil {
		t.Fatalf("create profile %s: %v", username, err)
	}
	return p
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	res, err := db.Migrate()
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if res.Changed {
		t.Error("second migrate reported changes")
	}
	if res.Dirty {
		t.Error("migration left db dirty")
	}
}

func TestProfileLifecycle(t *testing.T) {
	db := testDB(t)

	p := mustProfile(t, db, "alice")
	if p.ID == "" {
		t.Fatal("profile has empty id")
	}

	got, err := db.GetProfileByUsername("alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got == nil || got.ID != p.ID {
		t.Fatalf("get by username = %+v, want id %s", got, p.ID)
	}

	got, err = db.GetProfileByID(p.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got == nil || got.Username != "alice" {
		t.Fatalf("get by id = %+v, want username alice", got)
	}

	got, err = db.GetProfileByUsername("nobody")
	if err != nil {
		t.Fatalf("get unknown: %v", err)
	}
	if got != nil {
		t.Errorf("unknown username resolved to %+v", got)
	}

	count, err := db.ProfileCount()
	if err != nil {
		t.Fatalf("profile count: %v", err)
	}
	if count != 1 {
		t.Errorf("profile count = %d, want 1", count)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	db := testDB(t)

	mustProfile(t, db, "alice")
	if _, err := db.CreateProfile("alice", "other"); err == nil {
		t.Fatal("duplicate username accepted")
	}
}

func TestContacts(t *testing.T) {
	db := testDB(t)

	alice := mustProfile(t, db, "alice")
	bob := mustProfile(t, db, "bob")
	carol := mustProfile(t, db, "carol")

	if err := db.AddContact(alice.ID, bob.ID); err != nil {
		t.Fatalf("add contact: %v", err)
	}
	if err := db.AddContact(alice.ID, carol.ID); err != nil {
		t.Fatalf("add contact: %v", err)
	}

	has, err := db.HasContact(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("has contact: %v", err)
	}
	if !has {
		t.Error("alice -> bob edge missing")
	}

	// The edge is directed; bob never added alice.
	has, err = db.HasContact(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("has contact: %v", err)
	}
	if has {
		t.Error("bob -> alice edge should not exist")
	}

	list, err := db.ListContacts(alice.ID)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(list) != 2 || list[0].Username != "bob" || list[1].Username != "carol" {
		t.Fatalf("contacts = %+v, want [bob carol]", list)
	}

	if err := db.AddContact(alice.ID, bob.ID); err == nil {
		t.Error("duplicate edge accepted")
	}
}

func TestMessagesPair(t *testing.T) {
	db := testDB(t)

	alice := mustProfile(t, db, "alice")
	bob := mustProfile(t, db, "bob")
	carol := mustProfile(t, db, "carol")

	if _, err := db.InsertMessage(alice.ID, bob.ID, "hi bob"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.InsertMessage(bob.ID, alice.ID, "hi alice"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.InsertMessage(alice.ID, carol.ID, "hi carol"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	msgs, err := db.PairMessages(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("pair messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("pair returned %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "hi bob" || msgs[1].Content != "hi alice" {
		t.Errorf("messages out of order: %+v", msgs)
	}
	if msgs[0].SenderName != "alice" || msgs[1].SenderName != "bob" {
		t.Errorf("sender names not joined: %+v", msgs)
	}

	// Same pair regardless of argument order.
	swapped, err := db.PairMessages(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("pair messages swapped: %v", err)
	}
	if len(swapped) != 2 {
		t.Fatalf("swapped pair returned %d messages, want 2", len(swapped))
	}

	total, err := db.MessageCount()
	if err != nil {
		t.Fatalf("message count: %v", err)
	}
	if total != 3 {
		t.Errorf("message count = %d, want 3", total)
	}
}

func TestReadMarkersAndUnread(t *testing.T) {
	db := testDB(t)

	alice := mustProfile(t, db, "alice")
	bob := mustProfile(t, db, "bob")

	marker, err := db.ReadMarker(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("read marker: %v", err)
	}
	if marker != 0 {
		t.Errorf("fresh marker = %d, want 0", marker)
	}

	if _, err := db.InsertMessage(bob.ID, alice.ID, "ping"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Alice's own messages never count toward her unread.
	if _, err := db.InsertMessage(alice.ID, bob.ID, "pong"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := db.UnreadCount(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}

	if err := db.SetReadMarker(alice.ID, bob.ID); err != nil {
		t.Fatalf("set marker: %v", err)
	}
	n, err = db.UnreadCount(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("unread after mark: %v", err)
	}
	if n != 0 {
		t.Errorf("unread after mark = %d, want 0", n)
	}

	// Markers are directional; bob still has alice's message unread.
	n, err = db.UnreadCount(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("unread for bob: %v", err)
	}
	if n != 1 {
		t.Errorf("bob unread = %d, want 1", n)
	}

	// Upsert path: a second mark must not fail.
	if err := db.SetReadMarker(alice.ID, bob.ID); err != nil {
		t.Fatalf("re-mark: %v", err)
	}
}
