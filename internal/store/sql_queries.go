package store

const (
	roleIDByName = `SELECT id FROM roles WHERE name = $1;`

	roleInfoByID = `SELECT r.name, g.name
    FROM roles r
    JOIN roles_groups_associations rga ON rga.role_id = r.id
    JOIN roles_groups g ON g.id = rga.role_group_id
    WHERE r.id = $1;`

	createIdentity = `INSERT INTO website_users (email, password, register_date, activity_date)
    VALUES ($1, $2, $3, $4)
    RETURNING id, email, password, register_date, activity_date, email_confirm;`

	findIdentityByEmail = `SELECT id, email, password, register_date, activity_date, email_confirm
    FROM website_users
    WHERE email = $1;`

	touchIdentityActivity = `UPDATE website_users SET activity_date = $2 WHERE id = $1;`

	setIdentityPassword = `UPDATE website_users SET password = $2 WHERE email = $1;`

	confirmIdentityEmail = `UPDATE website_users SET email_confirm = TRUE, activity_date = $2 WHERE id = $1;`

	createProfile = `INSERT INTO profiles (key, created_date, visit_date, avatar, cookie_data, locations, ip, user_agent, history)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id;`

	profileColumns = `id, key, created_date, visit_date, avatar, cookie_data, locations, ip, user_agent, history`

	findProfileByKey = `SELECT ` + profileColumns + `
    FROM profiles
    WHERE key = $1;`

	// Row-level lock closes the read-modify-write race between
	// concurrent refreshes of the same session key.
	findProfileByKeyForUpdate = `SELECT ` + profileColumns + `
    FROM profiles
    WHERE key = $1
    FOR UPDATE;`

	findProfileByID = `SELECT ` + profileColumns + `
    FROM profiles
    WHERE id = $1;`

	cookieDataByKey = `SELECT cookie_data FROM profiles WHERE key = $1;`

	deleteProfile = `DELETE FROM profiles WHERE id = $1;`

	// Unclaimed profiles only: an association bound to a website or
	// webapp identity keeps its profile alive regardless of age.
	deleteStaleProfiles = `DELETE FROM profiles p
    USING users_associations a
    WHERE a.profile_id = p.id
      AND a.user_website_id IS NULL
      AND a.user_webapp_id IS NULL
      AND p.visit_date < $1;`

	createAssociation = `INSERT INTO users_associations (role_id, profile_id, user_website_id, user_webapp_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id;`

	findAssociationByProfileID = `SELECT id, role_id, profile_id, user_website_id, user_webapp_id
    FROM users_associations
    WHERE profile_id = $1;`

	findAssociationByWebsiteID = `SELECT id, role_id, profile_id, user_website_id, user_webapp_id
    FROM users_associations
    WHERE user_website_id = $1;`

	rebindAssociation = `UPDATE users_associations
    SET role_id = $1, profile_id = $2, user_website_id = $3, user_webapp_id = $4
    WHERE id = $5;`
)
