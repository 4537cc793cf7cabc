package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

const userColumns = "id, name, email, password, role, phone, location, about, avatar, category, favorites"

// UserAdapter implements user persistence in Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
		&u.Phone, &u.Location, &u.About, &u.Avatar, &u.Category,
		pq.Array(&u.Favorites))
	if err != nil {
		return nil, err
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return &u, nil
}

func userRecord(u *entities.User) goqu.Record {
	return goqu.Record{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"password":  u.Password,
		"role":      u.Role,
		"phone":     u.Phone,
		"location":  u.Location,
		"about":     u.About,
		"avatar":    u.Avatar,
		"category":  u.Category,
		"favorites": pq.Array(u.Favorites),
	}
}

func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	u, err := scanUser(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return u, nil
}

func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	u, err := scanUser(a.client.DB().QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user by email", err)
	}
	return u, nil
}

func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users", userColumns)
	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	out := []*entities.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}
	return out, nil
}

func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	applyUserDefaults(user)

	query, args, err := a.db.Insert("users").Rows(userRecord(user)).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

func (a *UserAdapter) Update(ctx context.Context, key repositories.UserKey, patch repositories.UserPatch) (*entities.User, error) {
	record := goqu.Record{}
	if patch.Name != nil {
		record["name"] = *patch.Name
	}
	if patch.Email != nil {
		record["email"] = *patch.Email
	}
	if patch.Password != nil {
		record["password"] = *patch.Password
	}
	if patch.Role != nil {
		record["role"] = *patch.Role
	}
	if patch.Phone != nil {
		record["phone"] = *patch.Phone
	}
	if patch.Location != nil {
		record["location"] = *patch.Location
	}
	if patch.About != nil {
		record["about"] = *patch.About
	}
	if patch.Avatar != nil {
		record["avatar"] = *patch.Avatar
	}
	if patch.Category != nil {
		record["category"] = *patch.Category
	}
	if patch.Favorites != nil {
		record["favorites"] = pq.Array(*patch.Favorites)
	}

	var where goqu.Ex
	if key.ID != "" {
		where = goqu.Ex{"id": key.ID}
	} else {
		where = goqu.Ex{"email": key.Email}
	}

	if len(record) > 0 {
		query, args, err := a.db.Update("users").Set(record).Where(where).Prepared(true).ToSQL()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build user update query", err)
		}
		res, err := a.client.DB().ExecContext(ctx, query, args...)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to update user", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, apperrors.NewNotFoundError("user not found")
		}
	}

	if key.ID != "" {
		return a.GetByID(ctx, key.ID)
	}
	email := key.Email
	if patch.Email != nil {
		email = *patch.Email
	}
	return a.GetByEmail(ctx, email)
}

func (a *UserAdapter) Delete(ctx context.Context, id string) (*entities.User, error) {
	u, err := a.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// References from services, contracts and notifications cascade at
	// the schema level; the JSON backend intentionally leaves them
	// dangling instead. Callers must not depend on either behavior.
	query, args, err := a.db.Delete("users").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to delete user", err)
	}
	return u, nil
}

func (a *UserAdapter) ToggleFavorite(ctx context.Context, userID, serviceID string) (*entities.User, error) {
	u, err := a.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.HasFavorite(serviceID) {
		kept := []string{}
		for _, fav := range u.Favorites {
			if fav != serviceID {
				kept = append(kept, fav)
			}
		}
		u.Favorites = kept
	} else {
		u.Favorites = append(u.Favorites, serviceID)
	}

	query, args, err := a.db.Update("users").
		Set(goqu.Record{"favorites": pq.Array(u.Favorites)}).
		Where(goqu.Ex{"id": userID}).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build favorites update query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to toggle favorite", err)
	}
	return u, nil
}

func (a *UserAdapter) UpsertByEmail(ctx context.Context, user *entities.User) (bool, error) {
	applyUserDefaults(user)

	query := `INSERT INTO users (id, name, email, password, role, phone, location, about, avatar, category, favorites)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (email) DO NOTHING`
	res, err := a.client.DB().ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Password, user.Role,
		user.Phone, user.Location, user.About, user.Avatar, user.Category,
		pq.Array(user.Favorites))
	if err != nil {
		return false, apperrors.NewInternalError("failed to upsert user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to read upsert result", err)
	}
	return n > 0, nil
}

func applyUserDefaults(user *entities.User) {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
}
