package repository

const (
	createJobQuery = `INSERT INTO burn_jobs (job_id, user_id, input_s3_key, input_bucket, subtitle_s3_key, output_s3_key,
						output_bucket, output_name, file_size, frame_rate, style, status, created_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now()) RETURNING *`

	getJobByIDQuery = `SELECT job_id, user_id, input_s3_key, input_bucket, subtitle_s3_key, output_s3_key, output_bucket,
						output_name, file_size, frame_rate, style, progress, status, error_text, created_at, started_at, completed_at
					FROM burn_jobs WHERE job_id = $1`

	getJobsByUserIDQuery = `SELECT job_id, user_id, input_s3_key, input_bucket, subtitle_s3_key, output_s3_key, output_bucket,
						output_name, file_size, frame_rate, style, progress, status, error_text, created_at, started_at, completed_at
					FROM burn_jobs WHERE user_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	getTotalJobsByUserIDQuery = `SELECT COUNT(job_id) FROM burn_jobs WHERE user_id = $1`

	updateJobStatusQuery = `UPDATE burn_jobs
					SET status = $2,
					    error_text = $3,
					    started_at = CASE WHEN $2 = 'in_progress' THEN now() ELSE started_at END,
					    completed_at = CASE WHEN $2 IN ('completed', 'failed') THEN now() ELSE completed_at END
					WHERE job_id = $1`

	setJobOutputQuery = `UPDATE burn_jobs SET output_s3_key = $2 WHERE job_id = $1`

	deleteJobQuery = `DELETE FROM burn_jobs WHERE job_id = $1 AND user_id = $2`
)
