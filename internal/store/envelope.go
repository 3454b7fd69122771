package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentSchemaVersion はレコードエンベロープの現行バージョン。
const CurrentSchemaVersion = 1

// envelope は永続値のバージョン付きラッパー。
// 旧形式（エンベロープなしの裸のJSON値）はバージョン0として扱い、
// 読み込み時にそのまま現行ペイロードへ昇格する。
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// Encode は値をバージョン付きエンベロープでJSONエンコードする。
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	raw, err := json.Marshal(envelope{
		SchemaVersion: CurrentSchemaVersion,
		Data:          data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return raw, nil
}

// Decode はエンベロープ付きJSON値をデコードしてvに格納する。
// 読み込み時アップグレードパス:
//   - エンベロープなしの旧値（schema_versionキーを持たないJSON）は
//     バージョン0とみなし、そのままペイロードとしてデコードする。
//     次回のライトスルーで現行エンベロープに書き換わる。
//   - 現行より新しいバージョンは解釈できないためErrCorruptedとして扱う。
//
// JSONとして解釈できない値はErrCorruptedをラップして返す。
// 呼び出し側がフォールバック（欠損扱い）を判断する。
func Decode(raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Data == nil {
		// エンベロープなしの旧形式（配列、またはschema_versionを持たない
		// オブジェクト）。値全体をペイロードとして扱う。
		if !looksLikeLegacyPayload(raw) {
			return fmt.Errorf("%w: neither envelope nor legacy payload", ErrCorrupted)
		}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("%w: legacy payload: %v", ErrCorrupted, err)
		}
		return nil
	}

	if env.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("%w: unknown schema version %d", ErrCorrupted, env.SchemaVersion)
	}

	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return nil
}

// GetDecoded はキーの値を取得してデコードするヘルパー。
// キーが存在しない場合はErrNotFound、値が壊れている場合はErrCorruptedを
// ラップしたエラーを返す。
func GetDecoded(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return Decode(raw, v)
}

// SetEncoded は値をエンベロープでエンコードして書き込むヘルパー。
func SetEncoded(ctx context.Context, s Store, key string, v any) error {
	raw, err := Encode(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}

// looksLikeLegacyPayload は旧形式ペイロードとして扱える値かを判定する。
// 旧形式はオブジェクトまたは配列のJSON値に限る。
func looksLikeLegacyPayload(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// IsCorrupted はエラーがストア値の破損を示すかを判定する。
func IsCorrupted(err error) bool {
	return errors.Is(err, ErrCorrupted)
}

// IsNotFound はエラーがキー欠損を示すかを判定する。
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
