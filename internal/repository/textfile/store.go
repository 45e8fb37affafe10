// internal/repository/textfile/store.go
package textfile

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
)

// lockSuffix names the sibling file that serialises writers across processes.
const lockSuffix = ".lock"

// maxLineBytes bounds a single entry; profiles owning many accounts grow long.
const maxLineBytes = 1 << 20

// Store implements repository.Store on a line-oriented text file.
// Every operation opens the file, works, and closes it again.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ repository.Store = (*Store)(nil)

// Open returns a Store for path, creating the file and its directory when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, util.Unavailable("open", fmt.Errorf("create directory %s: %w", dir, err))
		}
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o600)
	if err != nil {
		return nil, util.Unavailable("open", err)
	}
	if err := f.Close(); err != nil {
		return nil, util.Unavailable("open", err)
	}
	return &Store{path: path}, nil
}

// Name describes the backing file.
func (s *Store) Name() string { return "text file " + s.path }

// Close releases nothing; files are scoped to each operation.
func (s *Store) Close() error { return nil }

// line is one physical line of the file, kept verbatim for rewriting.
type line struct {
	raw   string
	entry entry
	blank bool
}

func (s *Store) load(ctx context.Context, op string) ([]line, error) {
	if err := ctx.Err(); err != nil {
		return nil, util.Unavailable(op, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, util.Unavailable(op, err)
	}
	defer f.Close()

	var lines []line
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for n := 1; scanner.Scan(); n++ {
		raw := scanner.Text()
		e, ok, err := parseEntry(raw)
		if err != nil {
			return nil, util.Unavailable(op, fmt.Errorf("%s line %d: %w", s.path, n, err))
		}
		lines = append(lines, line{raw: raw, entry: e, blank: !ok})
	}
	if err := scanner.Err(); err != nil {
		return nil, util.Unavailable(op, err)
	}
	return lines, nil
}

// entries returns the tag's entries in file order.
func (s *Store) entries(ctx context.Context, op, tag string) ([]entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx, op)
	if err != nil {
		return nil, err
	}
	var out []entry
	for _, l := range lines {
		if !l.blank && l.entry.tag == tag {
			out = append(out, l.entry)
		}
	}
	return out, nil
}

func (s *Store) find(ctx context.Context, op, tag string, id int64) (entry, error) {
	es, err := s.entries(ctx, op, tag)
	if err != nil {
		return entry{}, err
	}
	for _, e := range es {
		if e.id == id {
			return e, nil
		}
	}
	return entry{}, util.ErrNotFound
}

func (s *Store) highest(ctx context.Context, op, tag string) (int64, error) {
	es, err := s.entries(ctx, op, tag)
	if err != nil {
		return domain.NoID, err
	}
	top := domain.NoID
	for _, e := range es {
		if e.id > top {
			top = e.id
		}
	}
	return top, nil
}

// decodeAll decodes entries and orders the results by id.
func decodeAll[T domain.Record](op string, es []entry, decode func(entry) (T, error)) ([]T, error) {
	out := make([]T, 0, len(es))
	for _, e := range es {
		rec, err := decode(e)
		if err != nil {
			return nil, util.Unavailable(op, err)
		}
		out = append(out, rec)
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(a.RecordID(), b.RecordID())
	})
	return out, nil
}

// ReadUserProfile retrieves a profile by id.
func (s *Store) ReadUserProfile(ctx context.Context, id int64) (domain.UserProfile, error) {
	const op = "read user profile"
	e, err := s.find(ctx, op, tagProfile, id)
	if err != nil {
		return domain.UserProfile{}, err
	}
	p, err := decodeProfile(e)
	if err != nil {
		return domain.UserProfile{}, util.Unavailable(op, err)
	}
	return p, nil
}

// ReadUserProfileByUsername retrieves a profile by username.
func (s *Store) ReadUserProfileByUsername(ctx context.Context, username string) (domain.UserProfile, error) {
	const op = "read user profile by username"
	es, err := s.entries(ctx, op, tagProfile)
	if err != nil {
		return domain.UserProfile{}, err
	}
	for _, e := range es {
		if usernameOf(e) == username {
			p, err := decodeProfile(e)
			if err != nil {
				return domain.UserProfile{}, util.Unavailable(op, err)
			}
			return p, nil
		}
	}
	return domain.UserProfile{}, util.ErrNotFound
}

// ReadAllUserProfiles returns every profile ordered by id.
func (s *Store) ReadAllUserProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	const op = "read all user profiles"
	es, err := s.entries(ctx, op, tagProfile)
	if err != nil {
		return nil, err
	}
	return decodeAll(op, es, decodeProfile)
}

// HighestUserID returns the largest profile id, or -1.
func (s *Store) HighestUserID(ctx context.Context) (int64, error) {
	return s.highest(ctx, "highest user id", tagProfile)
}

// IsUsernameFree reports whether no profile uses username.
func (s *Store) IsUsernameFree(ctx context.Context, username string) (bool, error) {
	es, err := s.entries(ctx, "is username free", tagProfile)
	if err != nil {
		return false, err
	}
	for _, e := range es {
		if usernameOf(e) == username {
			return false, nil
		}
	}
	return true, nil
}

// ReadBankAccount retrieves an account by id.
func (s *Store) ReadBankAccount(ctx context.Context, id int64) (domain.BankAccount, error) {
	const op = "read bank account"
	e, err := s.find(ctx, op, tagAccount, id)
	if err != nil {
		return domain.BankAccount{}, err
	}
	a, err := decodeAccount(e)
	if err != nil {
		return domain.BankAccount{}, util.Unavailable(op, err)
	}
	return a, nil
}

// ReadAllBankAccounts returns every account ordered by id.
func (s *Store) ReadAllBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	const op = "read all bank accounts"
	es, err := s.entries(ctx, op, tagAccount)
	if err != nil {
		return nil, err
	}
	return decodeAll(op, es, decodeAccount)
}

// HighestAccountID returns the largest account id, or -1.
func (s *Store) HighestAccountID(ctx context.Context) (int64, error) {
	return s.highest(ctx, "highest account id", tagAccount)
}

// ReadTransactionRecord retrieves one audit record by id.
func (s *Store) ReadTransactionRecord(ctx context.Context, id int64) (domain.TransactionRecord, error) {
	const op = "read transaction record"
	e, err := s.find(ctx, op, tagTransaction, id)
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	t, err := decodeTransaction(e)
	if err != nil {
		return domain.TransactionRecord{}, util.Unavailable(op, err)
	}
	return t, nil
}

// ReadAllTransactionRecords returns the whole audit trail ordered by id.
func (s *Store) ReadAllTransactionRecords(ctx context.Context) ([]domain.TransactionRecord, error) {
	return s.transactionsWhere(ctx, "read all transaction records", func(domain.TransactionRecord) bool { return true })
}

// ReadTransactionsByActingUser returns records triggered by userID.
func (s *Store) ReadTransactionsByActingUser(ctx context.Context, userID int64) ([]domain.TransactionRecord, error) {
	return s.transactionsWhere(ctx, "read transactions by acting user", func(t domain.TransactionRecord) bool {
		return t.ActingUser == userID
	})
}

// ReadTransactionsByAccount returns records naming accountID as source or destination.
func (s *Store) ReadTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.TransactionRecord, error) {
	return s.transactionsWhere(ctx, "read transactions by account", func(t domain.TransactionRecord) bool {
		return t.Touches(accountID)
	})
}

// HighestTransactionID returns the largest record id, or -1.
func (s *Store) HighestTransactionID(ctx context.Context) (int64, error) {
	return s.highest(ctx, "highest transaction id", tagTransaction)
}

func (s *Store) transactionsWhere(ctx context.Context, op string, keep func(domain.TransactionRecord) bool) ([]domain.TransactionRecord, error) {
	es, err := s.entries(ctx, op, tagTransaction)
	if err != nil {
		return nil, err
	}
	all, err := decodeAll(op, es, decodeTransaction)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TransactionRecord, 0, len(all))
	for _, t := range all {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Write replaces each record's line in place, appends new ones, and swaps
// the rewritten file in with a single rename. Load, collision checks and
// rename all happen under the lock file, so writers in other processes see
// each other's records.
func (s *Store) Write(ctx context.Context, records ...domain.Record) error {
	const op = "write"
	if len(records) == 0 {
		return nil
	}
	pending, err := repository.Prepare(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := lockFile(s.path + lockSuffix)
	if err != nil {
		return util.Unavailable(op, fmt.Errorf("lock %s: %w", s.path, err))
	}
	defer func() { _ = unlock() }()

	lines, err := s.load(ctx, op)
	if err != nil {
		return err
	}
	index := make(map[entryKey]int, len(lines))
	for i, l := range lines {
		if !l.blank {
			index[l.entry.key()] = i
		}
	}

	for _, p := range pending {
		raw, err := Encode(p.Record)
		if err != nil {
			return util.Unavailable(op, err)
		}
		e, _, err := parseEntry(raw)
		if err != nil {
			return util.Unavailable(op, err)
		}
		if i, exists := index[e.key()]; exists {
			if p.Fresh {
				return util.Unavailable(op, fmt.Errorf("%w: %s %d", util.ErrIDCollision, e.tag, e.id))
			}
			lines[i] = line{raw: raw, entry: e}
			continue
		}
		index[e.key()] = len(lines)
		lines = append(lines, line{raw: raw, entry: e})
	}

	owners := map[string]int64{}
	for _, l := range lines {
		if l.blank || l.entry.tag != tagProfile {
			continue
		}
		name := usernameOf(l.entry)
		if other, dup := owners[name]; dup && other != l.entry.id {
			return util.Unavailable(op, fmt.Errorf("%w: %q", util.ErrUsernameTaken, name))
		}
		owners[name] = l.entry.id
	}

	if err := s.replaceFile(lines); err != nil {
		return util.Unavailable(op, err)
	}
	return nil
}

// replaceFile writes lines to a temporary sibling and renames it over the store path.
func (s *Store) replaceFile(lines []line) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, l := range lines {
		if l.blank {
			continue
		}
		if _, err = w.WriteString(l.raw + "\n"); err != nil {
			return err
		}
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
