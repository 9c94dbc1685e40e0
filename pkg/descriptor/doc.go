// Package descriptor loads form definitions written as YAML or JSON
// documents:
//
//	forms:
//	  signup:
//	    title: Create account
//	    method: post
//	    fields:
//	      - name: username
//	        label: Username
//	        rules: [required, noSpaces]
//
// Each field entry decodes into field.Config.
package descriptor
