package webauthnhandler

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/intinc/platformexplorer/internal/errors"
	"log/slog"
)

type userRow struct {
	ID          []byte `db:"id"`
	DisplayName string `db:"display_name"`
}

type credentialRow struct {
	ID                        []byte `db:"id"`
	UserID                    []byte `db:"user_id"`
	PublicKey                 []byte `db:"public_key"`
	AttestationType           string `db:"attestation_type"`
	Transport                 string `db:"transport"`
	FlagUserPresent           bool   `db:"flag_user_present"`
	FlagUserVerified          bool   `db:"flag_user_verified"`
	FlagBackupEligible        bool   `db:"flag_backup_eligible"`
	FlagBackupState           bool   `db:"flag_backup_state"`
	AuthenticatorAAGUID       []byte `db:"authenticator_aaguid"`
	AuthenticatorSignCount    uint32 `db:"authenticator_sign_count"`
	AuthenticatorCloneWarning bool   `db:"authenticator_clone_warning"`
	AuthenticatorAttachment   string `db:"authenticator_attachment"`
}

func newCredentialRow(userID []byte, c *webauthn.Credential) (credentialRow, error) {
	transport, err := json.Marshal(c.Transport)
	if err != nil {
		return credentialRow{}, errors.Wrap(err, "JSON encode transport")
	}
	return credentialRow{
		ID:                        c.ID,
		UserID:                    userID,
		PublicKey:                 c.PublicKey,
		AttestationType:           c.AttestationType,
		Transport:                 string(transport),
		FlagUserPresent:           c.Flags.UserPresent,
		FlagUserVerified:          c.Flags.UserVerified,
		FlagBackupEligible:        c.Flags.BackupEligible,
		FlagBackupState:           c.Flags.BackupState,
		AuthenticatorAAGUID:       c.Authenticator.AAGUID,
		AuthenticatorSignCount:    c.Authenticator.SignCount,
		AuthenticatorCloneWarning: c.Authenticator.CloneWarning,
		AuthenticatorAttachment:   string(c.Authenticator.Attachment),
	}, nil
}

func (row credentialRow) credential() (webauthn.Credential, error) {
	c := webauthn.Credential{
		ID:              row.ID,
		PublicKey:       row.PublicKey,
		AttestationType: row.AttestationType,
		Flags: webauthn.CredentialFlags{
			UserPresent:    row.FlagUserPresent,
			UserVerified:   row.FlagUserVerified,
			BackupEligible: row.FlagBackupEligible,
			BackupState:    row.FlagBackupState,
		},
		Authenticator: webauthn.Authenticator{
			AAGUID:       row.AuthenticatorAAGUID,
			SignCount:    row.AuthenticatorSignCount,
			CloneWarning: row.AuthenticatorCloneWarning,
			Attachment:   protocol.AuthenticatorAttachment(row.AuthenticatorAttachment),
		},
	}
	if err := json.Unmarshal([]byte(row.Transport), &c.Transport); err != nil {
		return webauthn.Credential{}, errors.Wrap(err, "JSON decode transport")
	}
	return c, nil
}

func (h *WebAuthnHandler) upsertUser(ctx context.Context, u webauthn.User) error {
	stmt := `INSERT INTO users (id, display_name)
VALUES (:id, :display_name)
ON CONFLICT (id) DO UPDATE SET display_name = excluded.display_name`
	row := userRow{ID: u.WebAuthnID(), DisplayName: u.WebAuthnDisplayName()}
	if _, err := h.db.ReadWrite.NamedExecContext(ctx, stmt, row); err != nil {
		return errors.Wrap(err, "db upsert user",
			slog.String("display_name", row.DisplayName),
			slog.String("user_id", hex.EncodeToString(row.ID)),
		)
	}
	return nil
}

func (h *WebAuthnHandler) getUser(ctx context.Context, id []byte) (*user, error) {
	var row userRow
	if err := h.db.ReadOnly.GetContext(ctx, &row, `SELECT id, display_name FROM users WHERE id = ?`, id); err != nil {
		return nil, errors.Wrap(err, "read user", slog.String("user_id", hex.EncodeToString(id)))
	}

	var rows []credentialRow
	stmt := `SELECT id,
       user_id,
       public_key,
       attestation_type,
       transport,
       flag_user_present,
       flag_user_verified,
       flag_backup_eligible,
       flag_backup_state,
       authenticator_aaguid,
       authenticator_sign_count,
       authenticator_clone_warning,
       authenticator_attachment
FROM credentials
WHERE user_id = ?`
	if err := h.db.ReadOnly.SelectContext(ctx, &rows, stmt, id); err != nil {
		return nil, errors.Wrap(err, "read credentials")
	}

	u := &user{id: row.ID, displayName: row.DisplayName, credentials: make([]webauthn.Credential, 0, len(rows))}
	for _, r := range rows {
		c, err := r.credential()
		if err != nil {
			return nil, err
		}
		u.credentials = append(u.credentials, c)
	}
	return u, nil
}

func (h *WebAuthnHandler) upsertCredential(ctx context.Context, userID []byte, credential *webauthn.Credential) error {
	row, err := newCredentialRow(userID, credential)
	if err != nil {
		return err
	}
	stmt := `INSERT INTO credentials (id, user_id, public_key, attestation_type, transport,
                         flag_user_present, flag_user_verified, flag_backup_eligible, flag_backup_state,
                         authenticator_aaguid, authenticator_sign_count, authenticator_clone_warning,
                         authenticator_attachment)
VALUES (:id, :user_id, :public_key, :attestation_type, :transport,
        :flag_user_present, :flag_user_verified, :flag_backup_eligible, :flag_backup_state,
        :authenticator_aaguid, :authenticator_sign_count, :authenticator_clone_warning,
        :authenticator_attachment)
ON CONFLICT (id) DO UPDATE SET attestation_type            = excluded.attestation_type,
                               transport                   = excluded.transport,
                               flag_user_present           = excluded.flag_user_present,
                               flag_user_verified          = excluded.flag_user_verified,
                               flag_backup_eligible        = excluded.flag_backup_eligible,
                               flag_backup_state           = excluded.flag_backup_state,
                               authenticator_aaguid        = excluded.authenticator_aaguid,
                               authenticator_sign_count    = excluded.authenticator_sign_count,
                               authenticator_clone_warning = excluded.authenticator_clone_warning,
                               authenticator_attachment    = excluded.authenticator_attachment`
	if _, err = h.db.ReadWrite.NamedExecContext(ctx, stmt, row); err != nil {
		return errors.Wrap(err, "db upsert credential",
			slog.String("user_id", hex.EncodeToString(userID)),
			slog.String("credential_id", hex.EncodeToString(credential.ID)),
		)
	}
	return nil
}

func (h *WebAuthnHandler) userExists(ctx context.Context, userID []byte) (bool, error) {
	var exists bool
	if err := h.db.ReadOnly.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID); err != nil {
		return false, errors.Wrap(err, "query user exists")
	}
	return exists, nil
}
