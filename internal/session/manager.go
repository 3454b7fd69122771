// Package session はセッション/認証管理のドメインロジックを提供する。
// 登録・ログイン・ログアウト・プロフィール更新と「現在ユーザー」ポインタの
// ライフサイクル（ストアからのロードで初期化、ログアウトでクリア）を担う。
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hitoshi/manas/internal/model"
	"github.com/hitoshi/manas/internal/store"
)

// ThemeApplier はテーマ副作用の適用先インターフェース。
// theme.Controllerの部分集合として定義する。
type ThemeApplier interface {
	Apply(t model.Theme)
	Reset()
}

// ProfilePatch はプロフィール更新の差分を表す。
// 空文字のフィールドは変更なしとして扱う。
type ProfilePatch struct {
	Name  string
	Email string
	Theme string
}

// Manager はセッション/認証管理のサービス層。
// 現在ユーザーのポインタは最大1つで、マルチセッションはサポートしない。
// すべての変更は即時ストアへ永続化される（ライトスルー）。
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	themes ThemeApplier
}

// NewManager はManagerの新しいインスタンスを生成する。
func NewManager(st store.Store, themes ThemeApplier) *Manager {
	return &Manager{
		store:  st,
		themes: themes,
	}
}

// Register は新規ユーザーを登録する。
// メールアドレスが既存ユーザーと完全一致（大文字小文字を区別）する場合は
// EMAIL_TAKENで失敗し、ユーザーコレクションは変更されない。
// 成功時は新ユーザーを現在ユーザーに設定し、両方を永続化する。
func (m *Manager) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" {
		return nil, model.NewMissingFieldError("name")
	}
	if email == "" {
		return nil, model.NewMissingFieldError("email")
	}
	if password == "" {
		return nil, model.NewMissingFieldError("password")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := m.loadUsers(ctx)

	for _, u := range users {
		if u.Email == email {
			return nil, model.NewEmailTakenError()
		}
	}

	user := model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
		Preferences: model.Preferences{
			Theme: model.ThemeLight,
		},
	}

	users = append(users, user)
	if err := store.SetEncoded(ctx, m.store, store.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("ユーザーコレクションの保存に失敗しました: %w", err)
	}

	current := user.WithoutPassword()
	if err := store.SetEncoded(ctx, m.store, store.KeyCurrentUser, current); err != nil {
		return nil, fmt.Errorf("セッションポインタの保存に失敗しました: %w", err)
	}

	m.themes.Apply(user.Preferences.Theme)

	slog.Info("user registered",
		slog.String("user_id", user.ID),
	)

	return &current, nil
}

// Login はメールアドレスとパスワードの両方が完全一致した場合のみ成功する。
// どちらが誤っていても同一のINVALID_CREDENTIALSエラーを返す
// （パスワード照合は平文比較。この設計が保持する観測仕様であり、修正対象外）。
// 成功時は現在ユーザーを設定し、保存済みテーマを適用する。
func (m *Manager) Login(ctx context.Context, email, password string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := m.loadUsers(ctx)

	for _, u := range users {
		if u.Email == email && u.Password == password {
			current := u.WithoutPassword()
			if err := store.SetEncoded(ctx, m.store, store.KeyCurrentUser, current); err != nil {
				return nil, fmt.Errorf("セッションポインタの保存に失敗しました: %w", err)
			}

			m.themes.Apply(u.Preferences.Theme)

			slog.Info("user logged in",
				slog.String("user_id", u.ID),
			)

			return &current, nil
		}
	}

	return nil, model.NewInvalidCredentialsError()
}

// Logout はセッションポインタをクリアする。ユーザーコレクションは変更しない。
// テーマはライトへ戻る。
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(ctx, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("セッションポインタの削除に失敗しました: %w", err)
	}

	m.themes.Reset()

	slog.Info("user logged out")
	return nil
}

// UpdateProfile は現在ユーザーにパッチをマージし、セッションポインタと
// ユーザーコレクション内の該当エントリ（idで照合）の両方へ永続化する。
// テーマの派生副作用を再適用する。
func (m *Manager) UpdateProfile(ctx context.Context, patch ProfilePatch) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.loadCurrent(ctx)
	if current == nil {
		return nil, model.NewNotLoggedInError()
	}

	if patch.Name != "" {
		current.Name = patch.Name
	}
	if patch.Email != "" {
		current.Email = patch.Email
	}
	if patch.Theme != "" {
		theme, ok := model.ParseTheme(patch.Theme)
		if !ok {
			return nil, model.NewInvalidThemeError(patch.Theme)
		}
		current.Preferences.Theme = theme
	}

	// コレクション内の該当エントリを更新（パスワードはコレクション側の値を維持）
	users := m.loadUsers(ctx)
	for i, u := range users {
		if u.ID == current.ID {
			users[i].Name = current.Name
			users[i].Email = current.Email
			users[i].Preferences = current.Preferences
			break
		}
	}
	if err := store.SetEncoded(ctx, m.store, store.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("ユーザーコレクションの保存に失敗しました: %w", err)
	}

	if err := store.SetEncoded(ctx, m.store, store.KeyCurrentUser, *current); err != nil {
		return nil, fmt.Errorf("セッションポインタの保存に失敗しました: %w", err)
	}

	m.themes.Apply(current.Preferences.Theme)

	slog.Info("user profile updated",
		slog.String("user_id", current.ID),
	)

	return current, nil
}

// Current は現在ログイン中のユーザーを返す。未ログインの場合はnil。
// ポインタが壊れている場合は欠損として扱い、nilを返す（クラッシュさせない）。
// ポインタがユーザーコレクションと整合しているかの検証は行わない。
func (m *Manager) Current(ctx context.Context) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loadCurrent(ctx)
}

// ApplyStoredTheme はセッションロード時の初期テーマを導出して適用する。
// ログイン中ユーザーがいればその設定、いなければライト。
func (m *Manager) ApplyStoredTheme(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current := m.loadCurrent(ctx); current != nil {
		m.themes.Apply(current.Preferences.Theme)
		return
	}
	m.themes.Reset()
}

// loadUsers はユーザーコレクションをロードする。
// キー欠損と値破損はどちらも空コレクションとして扱う（破損は警告ログのみ）。
func (m *Manager) loadUsers(ctx context.Context) []model.User {
	var users []model.User
	err := store.GetDecoded(ctx, m.store, store.KeyUsers, &users)
	if err != nil {
		if store.IsCorrupted(err) {
			slog.Warn("user collection is corrupted, falling back to empty",
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	return users
}

// loadCurrent はセッションポインタをロードする。欠損・破損はnil。
func (m *Manager) loadCurrent(ctx context.Context) *model.User {
	var current model.User
	err := store.GetDecoded(ctx, m.store, store.KeyCurrentUser, &current)
	if err != nil {
		if store.IsCorrupted(err) {
			slog.Warn("session pointer is corrupted, treating as logged out",
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	return &current
}
