package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	title    TEXT NOT NULL CHECK(length(trim(title)) > 0),
	type     TEXT NOT NULL CHECK(type IN ('movie', 'book', 'game', 'anime')),
	year     INTEGER,
	status   TEXT NOT NULL CHECK(status IN ('planned', 'watching', 'watched', 'reading', 'playing', 'completed')),
	favorite INTEGER NOT NULL DEFAULT 0 CHECK(favorite IN (0, 1)),
	rating   REAL,
	comment  TEXT
);

CREATE TABLE IF NOT EXISTS tags (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);

CREATE TABLE IF NOT EXISTS lists (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS item_tags (
	item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	tag_id  INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (item_id, tag_id)
);

CREATE TABLE IF NOT EXISTS list_items (
	list_id INTEGER NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
	item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	PRIMARY KEY (list_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_item_tags_tag_id ON item_tags(tag_id);
CREATE INDEX IF NOT EXISTS idx_list_items_item_id ON list_items(item_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_items_type ON items(type);
CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);
CREATE INDEX IF NOT EXISTS idx_items_year ON items(year);
CREATE INDEX IF NOT EXISTS idx_items_favorite ON items(favorite);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		// Tag uniqueness on the Unicode-folded name. Names that collide
		// under the new key are merged into the oldest tag first.
		version: 3,
		sql: `
ALTER TABLE tags ADD COLUMN name_key TEXT NOT NULL DEFAULT '';
UPDATE tags SET name_key = fold(name);

INSERT OR IGNORE INTO item_tags (item_id, tag_id)
	SELECT it.item_id, (SELECT MIN(k.id) FROM tags k WHERE k.name_key = t.name_key)
	FROM item_tags it INNER JOIN tags t ON t.id = it.tag_id;
DELETE FROM tags WHERE id NOT IN (SELECT MIN(id) FROM tags GROUP BY name_key);

CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name_key ON tags(name_key);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
