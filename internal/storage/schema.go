// ABOUTME: SQLite schema for context records and candidate products
// ABOUTME: Creates tables and indexes for the recommendation store
package storage

// Schema contains all SQL statements for database initialization
const Schema = `
-- Context records (one row per unit of user context)
CREATE TABLE IF NOT EXISTS contexts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    session_id TEXT,
    kind TEXT NOT NULL,
    name TEXT,
    summary TEXT,
    data TEXT,
    embedding TEXT,
    weight INTEGER DEFAULT 1,
    priority INTEGER DEFAULT 0,
    message_count INTEGER DEFAULT 0,
    last_activity INTEGER DEFAULT 0,
    active INTEGER DEFAULT 1,
    archived INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Candidate products with precomputed embeddings
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    category TEXT,
    subcategory TEXT,
    platform TEXT,
    features TEXT,
    tech_stack TEXT,
    use_cases TEXT,
    target_audience TEXT,
    keywords TEXT,
    summary TEXT,
    rating REAL DEFAULT 0,
    available INTEGER DEFAULT 1,
    embedding TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_contexts_user ON contexts(user_id);
CREATE INDEX IF NOT EXISTS idx_contexts_user_active ON contexts(user_id, active, archived);
CREATE INDEX IF NOT EXISTS idx_products_available ON products(available);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
