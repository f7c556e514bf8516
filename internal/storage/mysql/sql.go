package mysql

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// One enrollment per user; the address is optional, hence the LEFT JOIN.
const findEnrollmentByUserSQL = `
SELECT
  e.id,
  e.user_id,
  e.name,
  a.id,
  a.cep,
  a.street,
  a.city,
  a.state,
  a.number,
  a.neighborhood
FROM enrollments e
LEFT JOIN addresses a ON a.enrollment_id = e.id
WHERE e.user_id = ?
LIMIT 1
`

// LEFT JOIN so a dangling ticket_type_id surfaces as NULL columns instead of no row.
const findTicketByEnrollmentSQL = `
SELECT
  t.id,
  t.enrollment_id,
  t.status,
  t.created_at,
  t.updated_at,
  tt.id,
  tt.name,
  tt.price,
  tt.is_remote,
  tt.includes_hotel
FROM tickets t
LEFT JOIN ticket_types tt ON tt.id = t.ticket_type_id
WHERE t.enrollment_id = ?
ORDER BY t.id
LIMIT 1
`

const listHotelsSQL = `
SELECT id, name, image, created_at, updated_at
FROM hotels
ORDER BY id
`

const findHotelSQL = `
SELECT id, name, image, created_at, updated_at
FROM hotels
WHERE id = ?
`

const listRoomsByHotelSQL = `
SELECT id, name, capacity, hotel_id, created_at, updated_at
FROM rooms
WHERE hotel_id = ?
ORDER BY id
`

const findSessionByTokenSQL = `
SELECT id, user_id, token
FROM sessions
WHERE token = ?
LIMIT 1
`

// -----------------------------------------------------------------------------
// SEED WRITES
// -----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO hotels (name, image) VALUES (?, ?)
`

const upsertHotelSQL = `
INSERT INTO hotels (id, name, image)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  image      = VALUES(image),
  updated_at = CURRENT_TIMESTAMP(3)
`

const insertRoomSQL = `
INSERT INTO rooms (name, capacity, hotel_id) VALUES (?, ?, ?)
`

const upsertRoomSQL = `
INSERT INTO rooms (id, name, capacity, hotel_id)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  capacity   = VALUES(capacity),
  hotel_id   = VALUES(hotel_id),
  updated_at = CURRENT_TIMESTAMP(3)
`
