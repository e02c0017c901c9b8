// Package backend is a small recognition and translation service that speaks
// the same protocol as the production menu service.
//
// # Endpoints
//
//	GET  /        {"message": "Menu translation API is running"}
//	POST /upload  multipart form, photo in field "file"
//
// A successful upload answers with the photo's decoded size and one
// translation per recognized line:
//
//	{
//	  "status": "success",
//	  "translations": [
//	    {"chinese": "炒饭", "english": "Fried rice", "position": [[x,y],[x,y],[x,y],[x,y]]}
//	  ],
//	  "image_info": {"width": 800, "height": 600, "filename": "current_menu.jpg", "format": "JPEG"}
//	}
//
// Positions are listed top-left, top-right, bottom-right, bottom-left in
// pixels of the decoded image.
//
// # Errors
//
// A missing file field or an undecodable image is a 400 with an "error"
// message. A recognizer failure is reported in-band: HTTP 200 with status
// "failure" and a message, so clients can tell it apart from a server fault.
//
// # Translation
//
// Translation is a Glossary lookup loaded from YAML. Text with no entry is
// passed through untranslated.
package backend
