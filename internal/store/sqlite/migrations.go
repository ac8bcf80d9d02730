package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id           TEXT PRIMARY KEY,
    email        TEXT NOT NULL UNIQUE,
    provider     TEXT NOT NULL DEFAULT 'gmail',
    display_name TEXT,
    plan         TEXT NOT NULL DEFAULT '',
    max_labels   INTEGER NOT NULL DEFAULT 0,
    used_bytes   INTEGER NOT NULL DEFAULT 0,
    total_bytes  INTEGER NOT NULL DEFAULT 0,
    created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
    id               TEXT PRIMARY KEY,
    account_id       TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    thread_id        TEXT NOT NULL,
    from_addr        TEXT NOT NULL,
    from_name        TEXT,
    subject          TEXT,
    date             DATETIME NOT NULL,
    is_read          BOOLEAN DEFAULT FALSE,
    is_starred       BOOLEAN DEFAULT FALSE,
    is_replied       BOOLEAN DEFAULT FALSE,
    is_forwarded     BOOLEAN DEFAULT FALSE,
    size             INTEGER NOT NULL DEFAULT 0,
    attachment_count INTEGER NOT NULL DEFAULT 0,
    created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS message_labels (
    message_id  TEXT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
    label_id    TEXT NOT NULL,
    PRIMARY KEY (message_id, label_id)
);

CREATE TABLE IF NOT EXISTS labels (
    id          TEXT NOT NULL,
    account_id  TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    type        TEXT,
    exclusive   BOOLEAN DEFAULT FALSE,
    color       TEXT,
    sort_order  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (account_id, id)
);

CREATE TABLE IF NOT EXISTS contacts (
    account_id  TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    email       TEXT NOT NULL,
    name        TEXT,
    PRIMARY KEY (account_id, email)
);

CREATE TABLE IF NOT EXISTS sync_state (
    account_id  TEXT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
    history_id  INTEGER,
    last_sync   DATETIME
);

CREATE INDEX IF NOT EXISTS idx_messages_account ON messages(account_id);
CREATE INDEX IF NOT EXISTS idx_messages_date ON messages(date DESC);
CREATE INDEX IF NOT EXISTS idx_message_labels_label ON message_labels(label_id);
`
