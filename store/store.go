// Package store connects to the data store and manages projects, time
// entries, and the singleton timer row
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/timespan/internal/apperr"
	"github.com/ayoisaiah/timespan/internal/models"
)

const (
	projectBucket = "projects"
	entryBucket   = "time_entries"
	timerBucket   = "timer"
	metaBucket    = "meta"

	// timerKey is the constant key the singleton timer row lives under.
	timerKey = "active"

	lastModifiedKey = "last_modified"

	maxNameLen = 100
	maxDescLen = 500

	// keyTimeFormat pads fractional seconds so lexicographic key order
	// matches chronological order.
	keyTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// NewClient opens (or creates) the database and ensures the necessary
// buckets exist.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{
			projectBucket,
			entryBucket,
			timerBucket,
			metaBucket,
		} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}

	return &Client{db}, nil
}

func openDB(dbPath string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		dbPath,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrTimespanRunning
		}

		return nil, storageErr(err)
	}

	return db, nil
}

// storageErr logs the underlying cause and returns the generic storage
// error. Typed application errors pass through untouched.
func storageErr(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	slog.Error("storage operation failed", slog.Any("error", err))

	return ErrStorage.Wrap(err)
}

// touch records the time of the last successful write. Diagnostics only.
func touch(tx *bolt.Tx) error {
	return tx.Bucket([]byte(metaBucket)).
		Put([]byte(lastModifiedKey), []byte(time.Now().Format(time.RFC3339Nano)))
}

// LastModified reports when the store was last written to.
func (c *Client) LastModified() (time.Time, error) {
	var t time.Time

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(metaBucket)).Get([]byte(lastModifiedKey))
		if len(v) == 0 {
			return nil
		}

		parsed, err := time.Parse(time.RFC3339Nano, string(v))
		if err != nil {
			return err
		}

		t = parsed

		return nil
	})

	return t, storageErr(err)
}

func validateProject(p *models.Project) error {
	name := strings.TrimSpace(p.Name)
	if name == "" || len(name) > maxNameLen {
		return ErrNameInvalid.Fmt(maxNameLen)
	}

	if len(p.Description) > maxDescLen {
		return ErrDescriptionInvalid.Fmt(maxDescLen)
	}

	return nil
}

func (c *Client) CreateProject(p *models.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}

	value, err := json.Marshal(p)
	if err != nil {
		return storageErr(err)
	}

	err = c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(projectBucket))

		// The name uniqueness check and the insert share one write
		// transaction, so racing creates cannot both succeed.
		err := b.ForEach(func(_, v []byte) error {
			var existing models.Project
			if err := json.Unmarshal(v, &existing); err != nil {
				return err
			}

			if existing.Name == p.Name {
				return ErrProjectExists.Fmt(p.Name)
			}

			return nil
		})
		if err != nil {
			return err
		}

		if err := b.Put([]byte(p.ID.String()), value); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}

func (c *Client) UpdateProject(p *models.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}

	value, err := json.Marshal(p)
	if err != nil {
		return storageErr(err)
	}

	err = c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(projectBucket))

		if b.Get([]byte(p.ID.String())) == nil {
			return ErrProjectNotFound
		}

		// A rename must not collide with another project's name.
		err := b.ForEach(func(k, v []byte) error {
			if string(k) == p.ID.String() {
				return nil
			}

			var existing models.Project
			if err := json.Unmarshal(v, &existing); err != nil {
				return err
			}

			if existing.Name == p.Name {
				return ErrProjectExists.Fmt(p.Name)
			}

			return nil
		})
		if err != nil {
			return err
		}

		if err := b.Put([]byte(p.ID.String()), value); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}

func (c *Client) GetProject(id uuid.UUID) (*models.Project, error) {
	var p models.Project

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(projectBucket)).Get([]byte(id.String()))
		if v == nil {
			return ErrProjectNotFound
		}

		return json.Unmarshal(v, &p)
	})
	if err != nil {
		return nil, storageErr(err)
	}

	return &p, nil
}

func (c *Client) GetProjectByName(name string) (*models.Project, error) {
	var found *models.Project

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(projectBucket)).ForEach(func(_, v []byte) error {
			var p models.Project
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}

			if p.Name == name {
				found = &p
			}

			return nil
		})
	})
	if err != nil {
		return nil, storageErr(err)
	}

	if found == nil {
		return nil, ErrProjectNotFound
	}

	return found, nil
}

func (c *Client) ListProjects() ([]models.Project, error) {
	var projects []models.Project

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(projectBucket)).ForEach(func(_, v []byte) error {
			var p models.Project
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}

			projects = append(projects, p)

			return nil
		})
	})
	if err != nil {
		return nil, storageErr(err)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})

	return projects, nil
}

func (c *Client) DeleteProject(id uuid.UUID) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(projectBucket))

		if b.Get([]byte(id.String())) == nil {
			return ErrProjectNotFound
		}

		// The reference check and the delete share one write
		// transaction.
		err := tx.Bucket([]byte(entryBucket)).ForEach(func(_, v []byte) error {
			var e models.TimeEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}

			if e.ProjectID == id {
				return ErrProjectInUse
			}

			return nil
		})
		if err != nil {
			return err
		}

		if err := b.Delete([]byte(id.String())); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}

// entryKey orders entries chronologically while staying unique for entries
// that share a start time.
func entryKey(e *models.TimeEntry) []byte {
	return []byte(e.StartTime.UTC().Format(keyTimeFormat) + "/" + e.ID.String())
}

func (c *Client) CreateTimeEntry(e *models.TimeEntry) error {
	if e.EndTime.Before(e.StartTime) {
		return ErrEntryInvalid
	}

	// Never trust a caller-supplied duration.
	e.Duration = e.EndTime.Sub(e.StartTime)

	value, err := json.Marshal(e)
	if err != nil {
		return storageErr(err)
	}

	err = c.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(projectBucket)).Get([]byte(e.ProjectID.String())) == nil {
			return ErrProjectNotFound
		}

		if err := tx.Bucket([]byte(entryBucket)).Put(entryKey(e), value); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}

func (c *Client) UpdateTimeEntry(e *models.TimeEntry) error {
	value, err := json.Marshal(e)
	if err != nil {
		return storageErr(err)
	}

	err = c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(entryBucket))

		if b.Get(entryKey(e)) == nil {
			return ErrEntryNotFound
		}

		if err := b.Put(entryKey(e), value); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}

func (c *Client) ListTimeEntries(f EntryFilter) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(entryBucket)).ForEach(func(_, v []byte) error {
			var e models.TimeEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}

			if f.ProjectID != uuid.Nil && e.ProjectID != f.ProjectID {
				return nil
			}

			if !f.Start.IsZero() && e.StartTime.Before(f.Start) {
				return nil
			}

			if !f.End.IsZero() && e.StartTime.After(f.End) {
				return nil
			}

			entries = append(entries, e)

			return nil
		})
	})
	if err != nil {
		return nil, storageErr(err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].StartTime.Equal(entries[j].StartTime) {
			return entries[i].StartTime.Before(entries[j].StartTime)
		}

		return entries[i].ProjectName < entries[j].ProjectName
	})

	return entries, nil
}

func (c *Client) SaveTimer(t *models.Timer) error {
	value, err := json.Marshal(t)
	if err != nil {
		return storageErr(err)
	}

	err = c.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(projectBucket)).Get([]byte(t.ProjectID.String())) == nil {
			return ErrProjectNotFound
		}

		b := tx.Bucket([]byte(timerBucket))

		// The existence check and the insert share one write
		// transaction: of two racing starts exactly one succeeds.
		if b.Get([]byte(timerKey)) != nil {
			return ErrTimerExists
		}

		if err := b.Put([]byte(timerKey), value); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}

func (c *Client) UpdateTimer(t *models.Timer) error {
	value, err := json.Marshal(t)
	if err != nil {
		return storageErr(err)
	}

	err = c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(timerBucket))

		if b.Get([]byte(timerKey)) == nil {
			return ErrNoTimer
		}

		if err := b.Put([]byte(timerKey), value); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}

func (c *Client) GetTimer() (*models.Timer, error) {
	var t models.Timer

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(timerBucket)).Get([]byte(timerKey))
		if v == nil {
			return ErrNoTimer
		}

		return json.Unmarshal(v, &t)
	})
	if err != nil {
		return nil, storageErr(err)
	}

	return &t, nil
}

func (c *Client) DeleteTimer() error {
	err := c.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(timerBucket)).Delete([]byte(timerKey)); err != nil {
			return err
		}

		return touch(tx)
	})

	return storageErr(err)
}
